package registry

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/memxbar/config"
	"github.com/sarchlab/memxbar/mem/mem"
)

var _ = Describe("Registry", func() {
	var (
		mockCtrl *gomock.Controller
		conf     *config.Conf
		r        *Registry
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())

		conf = config.New()
		conf.Set("Bank", KeyDeviceType, "fake")
		conf.Set("Loop", KeyDeviceType, "loop")
		conf.Set("Odd", KeyDeviceType, "nonexistent")

		r = New(conf)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should create objects with the factory of their device type", func() {
		created := []string{}
		r.RegisterFactory("fake", func(name, section string) (mem.Bank, error) {
			Expect(section).To(Equal("Bank"))
			created = append(created, name)

			return NewMockBank(mockCtrl), nil
		})

		b0, err := r.Instantiate("Bank(0)", "Bank")
		Expect(err).NotTo(HaveOccurred())
		b1, err := r.Instantiate("Bank(1)", "Bank")
		Expect(err).NotTo(HaveOccurred())

		Expect(b0).NotTo(BeIdenticalTo(b1))
		Expect(created).To(Equal([]string{"Bank(0)", "Bank(1)"}))
		Expect(r.Names()).To(Equal([]string{"Bank(0)", "Bank(1)"}))
		Expect(r.Objects()).To(HaveLen(2))
	})

	It("should share objects declared twice", func() {
		count := 0
		r.RegisterFactory("fake", func(string, string) (mem.Bank, error) {
			count++
			return NewMockBank(mockCtrl), nil
		})

		b0, _ := r.Instantiate("Shared", "Bank")
		b1, _ := r.Instantiate("Shared", "Bank")

		Expect(b0).To(BeIdenticalTo(b1))
		Expect(count).To(Equal(1))

		found, ok := r.Lookup("Shared")
		Expect(ok).To(BeTrue())
		Expect(found).To(BeIdenticalTo(b0))
	})

	It("should reject unknown device types", func() {
		_, err := r.Instantiate("Odd", "Odd")

		Expect(err).To(MatchError(ErrUnknownDeviceType))
	})

	It("should reject sections without device type", func() {
		_, err := r.Instantiate("X", "Missing")

		Expect(err).To(MatchError(config.ErrMissingKey))
	})

	It("should detect an object declared inside itself", func() {
		r.RegisterFactory("loop", func(name, section string) (mem.Bank, error) {
			return r.Instantiate(name, section)
		})

		_, err := r.Instantiate("Loop", "Loop")

		Expect(err).To(MatchError(ErrCyclicDeclaration))
	})

	It("should not keep objects whose factory failed", func() {
		r.RegisterFactory("fake", func(string, string) (mem.Bank, error) {
			return nil, errors.New("bad")
		})

		_, err := r.Instantiate("Bank(0)", "Bank")

		Expect(err).To(HaveOccurred())
		_, ok := r.Lookup("Bank(0)")
		Expect(ok).To(BeFalse())
	})

	It("should panic on a duplicated factory", func() {
		f := func(string, string) (mem.Bank, error) { return nil, nil }
		r.RegisterFactory("fake", f)

		Expect(func() { r.RegisterFactory("fake", f) }).To(Panic())
	})
})

var _ = DescribeTable("ParseLowerLevel",
	func(tokens []string, section, name string, fails bool) {
		s, n, err := ParseLowerLevel(tokens)

		if fails {
			Expect(err).To(MatchError(ErrNoLowerLevel))
			return
		}

		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(section))
		Expect(n).To(Equal(name))
	},
	Entry("empty", []string{}, "", "", true),
	Entry("shared", []string{"Memory"}, "Memory", "Memory", false),
	Entry("named", []string{"Memory", "DRAM0"}, "Memory", "DRAM0", false),
)
