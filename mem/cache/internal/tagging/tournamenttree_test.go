package tagging

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TournamentTree", func() {
	var tree *TournamentTree

	BeforeEach(func() {
		tree = NewTournamentTree(2, 4)
	})

	It("should refuse a way count that is not a power of two", func() {
		Expect(func() { NewTournamentTree(1, 3) }).To(Panic())
	})

	It("should pick way 0 on a fresh tree", func() {
		Expect(tree.FindVictim(0)).To(Equal(0))
	})

	It("should point away from a visited left way", func() {
		tree.Visit(0, 0)

		Expect(tree.Bits(0)).To(Equal([]uint8{0, 1, 1, 0}))
		Expect(tree.FindVictim(0)).To(Equal(2))
	})

	It("should point away from a visited right way", func() {
		tree.Visit(0, 2)

		Expect(tree.Bits(0)).To(Equal([]uint8{0, 0, 0, 1}))
		Expect(tree.FindVictim(0)).To(Equal(0))
	})

	It("should rebase the way when descending to the right", func() {
		tree.Visit(0, 3)

		Expect(tree.Bits(0)).To(Equal([]uint8{0, 0, 0, 0}))

		tree.Visit(0, 2)

		Expect(tree.Bits(0)).To(Equal([]uint8{0, 0, 0, 1}))
	})

	It("should pick the first filled way after filling in order", func() {
		for wayID := 0; wayID < 4; wayID++ {
			tree.Visit(1, wayID)
		}

		Expect(tree.FindVictim(1)).To(Equal(0))
	})

	It("should never pick the most recently visited way", func() {
		r := rand.New(rand.NewSource(7))
		tree = NewTournamentTree(1, 8)

		for i := 0; i < 1000; i++ {
			wayID := r.Intn(8)
			tree.Visit(0, wayID)

			Expect(tree.FindVictim(0)).NotTo(Equal(wayID))
		}
	})

	It("should keep every node bit at 0 or 1", func() {
		r := rand.New(rand.NewSource(3))
		tree = NewTournamentTree(4, 64)

		for i := 0; i < 5000; i++ {
			setID := r.Intn(4)
			tree.Visit(setID, r.Intn(64))

			for _, bit := range tree.Bits(setID)[1:] {
				Expect(bit).To(BeNumerically("<=", 1))
			}

			victim := tree.FindVictim(setID)
			Expect(victim).To(BeNumerically(">=", 0))
			Expect(victim).To(BeNumerically("<", 64))
		}
	})

	It("should work with a single way", func() {
		tree = NewTournamentTree(1, 1)
		tree.Visit(0, 0)

		Expect(tree.FindVictim(0)).To(Equal(0))
	})

	It("should panic on a corrupted node", func() {
		tree.bits[1] = 2

		Expect(func() { tree.FindVictim(0) }).To(Panic())
	})
})
