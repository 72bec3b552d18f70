package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/docstudy/internal/client/quiz"
)

// Play runs the generated quiz of the focused document interactively.
func (a *App) Play(ctx context.Context) error {
	doc := a.documents.Focused()
	if doc == nil {
		printlnFn("Open a document first ('open <n>').")
		return nil
	}
	if len(doc.Quiz) == 0 {
		printlnFn("No quiz for this document yet; run 'quiz' to generate one.")
		return nil
	}

	r := quiz.New(doc.Quiz)

	for {
		for !r.Completed() {
			q, _ := r.Question()
			printlnFn(color.CyanString("Question %d of %d  (score %d)", r.Index()+1, r.Len(), r.Score()))
			printlnFn(q.Question)
			for i, o := range q.Options {
				printlnFn(fmt.Sprintf("  %d) %s", i+1, o))
			}

			answer, err := getSimpleText(a.reader, "Your answer (number)", os.Stdout)
			if err != nil {
				return nil
			}
			n, convErr := strconv.Atoi(answer)
			if convErr != nil || n < 1 || n > len(q.Options) {
				printlnFn("Pick a number between 1 and", len(q.Options))
				continue
			}

			r.Select(q.Options[n-1])
			r.Submit()

			if q.Options[n-1] == q.CorrectAnswer {
				printlnFn(color.GreenString("Correct!"))
			} else {
				printlnFn(color.RedString("Incorrect. The correct answer is: %s", q.CorrectAnswer))
			}
			r.Advance()
		}

		printlnFn(color.CyanString("Quiz completed! Score %d/%d (%d correct, %d incorrect)",
			r.Score(), r.Len(), r.Correct(), r.Incorrect()))

		again, err := getSimpleText(a.reader, "Play again? (y/n)", os.Stdout)
		if err != nil || again != "y" {
			return nil
		}
		r.Restart()
	}
}
