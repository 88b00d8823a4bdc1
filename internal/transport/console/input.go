package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/frahmantamala/budget-tracker/internal/history"
	"github.com/frahmantamala/budget-tracker/internal/transport"
)

// ErrInputClosed is returned when the input ends before an answer is read.
var ErrInputClosed = errors.New("input closed")

// InputReader asks questions on out and reads one line answers from in.
type InputReader struct {
	in  *bufio.Reader
	out io.Writer
}

func NewInputReader(in io.Reader, out io.Writer) *InputReader {
	return &InputReader{in: bufio.NewReader(in), out: out}
}

// Prompt writes the label and returns the trimmed answer.
func (r *InputReader) Prompt(label string) (string, error) {
	fmt.Fprint(r.out, label)
	line, err := r.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Reviewer asks the user what to do with each unreviewed transaction.
type Reviewer struct {
	input     *InputReader
	presenter *Presenter
}

func NewReviewer(input *InputReader, presenter *Presenter) *Reviewer {
	return &Reviewer{input: input, presenter: presenter}
}

// Review shows the transaction and asks whether to delete it. When kept,
// blank answers leave category, month and comments unchanged.
func (r *Reviewer) Review(t history.Transaction, position, total int) (history.ReviewDecision, error) {
	r.presenter.Transaction(transport.Result{
		Success:   true,
		Operation: fmt.Sprintf("Review Transaction %d/%d", position, total),
		Data:      t,
	})

	remove, err := r.confirm("Delete (Y/N)? ")
	if err != nil {
		return history.ReviewDecision{}, err
	}
	if remove {
		return history.ReviewDecision{Delete: true}, nil
	}

	category, err := r.input.Prompt("Category: ")
	if err != nil {
		return history.ReviewDecision{}, err
	}

	var patch history.TransactionPatch
	for {
		month, err := r.input.Prompt("Month: ")
		if err != nil {
			return history.ReviewDecision{}, err
		}
		patch, err = history.UpdateTransactionDTO{Category: answered(category), Month: &month}.Patch()
		if err == nil {
			break
		}
		r.presenter.Failure(transport.Failure("Review Transaction", err))
	}

	comments, err := r.input.Prompt("Comments: ")
	if err != nil {
		return history.ReviewDecision{}, err
	}
	patch.Comments = answered(comments)

	return history.ReviewDecision{Patch: patch}, nil
}

// answered treats a blank answer as keeping the current value.
func answered(answer string) *string {
	if answer == "" {
		return nil
	}
	return &answer
}

func (r *Reviewer) confirm(label string) (bool, error) {
	for {
		answer, err := r.input.Prompt(label)
		if err != nil {
			return false, err
		}
		switch strings.ToUpper(answer) {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		}
	}
}
