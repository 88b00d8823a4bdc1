package console_test

import (
	"bytes"
	"strings"

	"github.com/frahmantamala/budget-tracker/internal/transport/console"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("InputReader", func() {
	It("should write the label and return the trimmed answer", func() {
		out := &bytes.Buffer{}
		input := console.NewInputReader(strings.NewReader("  Rent \n"), out)

		answer, err := input.Prompt("Name: ")

		Expect(err).NotTo(HaveOccurred())
		Expect(answer).To(Equal("Rent"))
		Expect(out.String()).To(Equal("Name: "))
	})

	It("should accept a last line without a newline", func() {
		input := console.NewInputReader(strings.NewReader("last"), &bytes.Buffer{})

		answer, err := input.Prompt("> ")

		Expect(err).NotTo(HaveOccurred())
		Expect(answer).To(Equal("last"))
	})

	It("should report closed input", func() {
		input := console.NewInputReader(strings.NewReader(""), &bytes.Buffer{})

		_, err := input.Prompt("> ")

		Expect(err).To(MatchError(console.ErrInputClosed))
	})
})

var _ = Describe("Reviewer", func() {
	review := func(answers string) (*bytes.Buffer, *console.Reviewer) {
		out := &bytes.Buffer{}
		input := console.NewInputReader(strings.NewReader(answers), out)
		return out, console.NewReviewer(input, console.NewPresenter(out))
	}

	It("should ask again until the answer is Y or N", func() {
		out, reviewer := review("maybe\ny\n")

		decision, err := reviewer.Review(statementTransaction("REF-1", "-5", ""), 1, 3)

		Expect(err).NotTo(HaveOccurred())
		Expect(decision.Delete).To(BeTrue())
		Expect(strings.Count(out.String(), "Delete (Y/N)? ")).To(Equal(2))
		Expect(out.String()).To(ContainSubstring("Review Transaction 1/3"))
	})

	It("should collect the review fields when the transaction is kept", func() {
		_, reviewer := review("N\nFood\n4\nweekly shop\n")

		decision, err := reviewer.Review(statementTransaction("REF-1", "-5", ""), 1, 1)

		Expect(err).NotTo(HaveOccurred())
		Expect(decision.Delete).To(BeFalse())
		Expect(*decision.Patch.Category).To(Equal("Food"))
		Expect(*decision.Patch.Month).To(Equal(4))
		Expect(*decision.Patch.Comments).To(Equal("weekly shop"))
	})

	It("should leave blank answers unchanged", func() {
		_, reviewer := review("n\n\n\n\n")

		decision, err := reviewer.Review(statementTransaction("REF-1", "-5", ""), 1, 1)

		Expect(err).NotTo(HaveOccurred())
		Expect(decision.Patch.IsEmpty()).To(BeTrue())
	})

	It("should ask for the month again when it is invalid", func() {
		out, reviewer := review("N\nFood\n13\n2\n\n")

		decision, err := reviewer.Review(statementTransaction("REF-1", "-5", ""), 1, 1)

		Expect(err).NotTo(HaveOccurred())
		Expect(*decision.Patch.Month).To(Equal(2))
		Expect(strings.Count(out.String(), "Month: ")).To(Equal(2))
	})

	It("should fail when the input ends", func() {
		_, reviewer := review("N\n")

		_, err := reviewer.Review(statementTransaction("REF-1", "-5", ""), 1, 1)

		Expect(err).To(MatchError(console.ErrInputClosed))
	})
})
