package engine

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Engine", func() {
	var e *Engine

	BeforeEach(func() {
		e = NewEngine().WithBlockTypes(testCatalog()...)
	})

	It("should enumerate the registered types in order", func() {
		Expect(e.AvailableTypes()).To(Equal(
			[]string{"source", "adder", "probe", "panic"}))
	})

	It("should enumerate factory types", func() {
		e.WithFactoryTypes(FactoryType{Tag: "oscillators"})

		Expect(e.AvailableFactories()).To(Equal([]string{"oscillators"}))
	})

	It("should panic on a duplicate type registration", func() {
		Expect(func() {
			e.WithBlockTypes(BlockType{
				Tag:     "source",
				Factory: func() (Block, error) { return newSourceBlock(), nil },
			})
		}).To(Panic())
	})

	It("should add blocks in insertion order", func() {
		b1, err := e.AddBlock("source")
		Expect(err).ToNot(HaveOccurred())

		b2, err := e.AddBlock("adder")
		Expect(err).ToNot(HaveOccurred())

		Expect(e.Blocks()).To(Equal([]Block{b1, b2}))
	})

	It("should refuse to add a block of an unknown type", func() {
		b, err := e.AddBlock("subspace-transponder")

		Expect(err).To(MatchError(ErrUnknownBlockType))
		Expect(b).To(BeNil())
		Expect(e.Blocks()).To(BeEmpty())
	})

	It("should surface a factory failure without touching the live set",
		func() {
			e.WithBlockTypes(BlockType{
				Tag: "faulty",
				Factory: func() (Block, error) {
					return nil, errors.New("no can do")
				},
			})

			b, err := e.AddBlock("faulty")

			Expect(err).To(MatchError(ErrBlockInstantiation))
			Expect(b).To(BeNil())
			Expect(e.Blocks()).To(BeEmpty())
		})

	It("should find a live block by identity", func() {
		b, _ := e.AddBlock("source")

		found, ok := e.BlockByID(b.ID())
		Expect(ok).To(BeTrue())
		Expect(found).To(BeIdenticalTo(b))

		_, ok = e.BlockByID("source:0")
		Expect(ok).To(BeFalse())
	})

	It("should preserve a supplied identity on restoration", func() {
		b, err := e.RestoreBlock("source:deadbeef")

		Expect(err).ToNot(HaveOccurred())
		Expect(b.ID()).To(Equal("source:deadbeef"))
		Expect(e.Blocks()).To(HaveLen(1))
	})

	It("should refuse to restore a malformed identity", func() {
		_, err := e.RestoreBlock("justatag")

		Expect(err).To(MatchError(ErrUnknownBlockType))
		Expect(e.Blocks()).To(BeEmpty())
	})

	It("should refuse to restore an identity of an unknown type", func() {
		_, err := e.RestoreBlock("warpdrive:123")

		Expect(err).To(MatchError(ErrUnknownBlockType))
	})

	Context("wiring", func() {
		var (
			src   *sourceBlock
			probe *probeBlock
		)

		BeforeEach(func() {
			b1, _ := e.AddBlock("source")
			src = b1.(*sourceBlock)
			b2, _ := e.AddBlock("probe")
			probe = b2.(*probeBlock)
		})

		It("should wire an input to an output", func() {
			err := e.Wire(probe.ID(), "in", src.ID(), "x")

			Expect(err).ToNot(HaveOccurred())
			Expect(probe.InputByName("in").Source()).
				To(BeIdenticalTo(src.OutputByName("x")))
		})

		It("should reject wiring to an unknown block", func() {
			err := e.Wire(probe.ID(), "in", "source:999", "x")

			Expect(err).To(MatchError(ErrUnknownBlock))
		})

		It("should reject wiring to an unknown port", func() {
			err := e.Wire(probe.ID(), "in", src.ID(), "antenna")

			Expect(err).To(HaveOccurred())

			err = e.Wire(probe.ID(), "feeler", src.ID(), "x")

			Expect(err).To(HaveOccurred())
		})

		It("should reject a type-mismatched wiring", func() {
			b, _ := e.AddBlock("adder")
			adder := b.(*adderBlock)
			gate := adder.AddInput("enable", false)

			err := e.Wire(adder.ID(), "enable", src.ID(), "x")

			Expect(err).To(MatchError(ErrPortTypeMismatch))
			Expect(gate.Source()).To(BeNil())
		})

		It("should unwire an input", func() {
			Expect(e.Wire(probe.ID(), "in", src.ID(), "x")).To(Succeed())

			Expect(e.Unwire(probe.ID(), "in")).To(Succeed())

			Expect(probe.InputByName("in").Source()).To(BeNil())
		})

		It("should sever inputs wired to a removed block", func() {
			Expect(e.Wire(probe.ID(), "in", src.ID(), "x")).To(Succeed())
			src.emit = 5
			e.Tick()
			Expect(probe.seen).To(Equal([]int{5}))

			Expect(e.RemoveBlock(src.ID())).To(Succeed())

			Expect(e.Blocks()).To(Equal([]Block{probe}))
			Expect(probe.InputByName("in").Source()).To(BeNil())

			e.Tick()
			Expect(probe.seen).To(Equal([]int{5, 0}))
		})

		It("should refuse to remove an unknown block", func() {
			Expect(e.RemoveBlock("source:999")).
				To(MatchError(ErrUnknownBlock))
		})
	})

	Context("rate configuration", func() {
		It("should start at the default target rate", func() {
			Expect(e.TargetTickRate()).To(BeNumerically("~", 42.0, 0.01))
		})

		It("should change the target rate", func() {
			Expect(e.SetTickRate(100)).To(Succeed())

			Expect(e.TargetTickRate()).To(BeNumerically("~", 100.0, 0.01))
		})

		It("should reject a non-positive rate", func() {
			Expect(e.SetTickRate(0)).To(HaveOccurred())
			Expect(e.SetTickRate(-3)).To(HaveOccurred())
		})
	})
})
