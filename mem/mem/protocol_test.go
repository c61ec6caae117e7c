package mem

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

type releasingHop struct {
	name     string
	released *[]string
}

func (h releasingHop) Name() string { return h.name }

func (h releasingHop) AcceptAck(*Request) {}

func (h releasingHop) ReleaseRequest(*Request) {
	*h.released = append(*h.released, h.name)
}

var _ = Describe("Request", func() {
	var (
		mockCtrl   *gomock.Controller
		originator *MockOriginator
		req        *Request
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		originator = NewMockOriginator(mockCtrl)
		req = RequestBuilder{}.
			WithAddress(0x100).
			WithKind(AccessWrite).
			WithOriginator(originator).
			WithOriginID(3).
			Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should build", func() {
		Expect(req.ID).NotTo(BeEmpty())
		Expect(req.Addr).To(Equal(uint64(0x100)))
		Expect(req.Kind).To(Equal(AccessWrite))
		Expect(req.StatsFlag).To(BeTrue())
		Expect(req.OriginID).To(Equal(3))
		Expect(req.IsHomeNode()).To(BeTrue())
	})

	It("should exclude requests from statistics", func() {
		r := RequestBuilder{}.WithoutStats().Build()

		Expect(r.StatsFlag).To(BeFalse())
	})

	It("should pop hops in reverse order", func() {
		hop1 := NewMockHop(mockCtrl)
		hop2 := NewMockHop(mockCtrl)

		req.PushHop(hop1)
		req.PushHop(hop2)

		Expect(req.NumHops()).To(Equal(2))
		Expect(req.IsHomeNode()).To(BeFalse())
		Expect(req.PopHop()).To(BeIdenticalTo(hop2))
		Expect(req.PopHop()).To(BeIdenticalTo(hop1))
		Expect(req.PopHop()).To(BeNil())
	})

	It("should ack the originator once", func() {
		originator.EXPECT().ReceiveAck(req)

		req.Ack()

		Expect(req.IsAcked()).To(BeTrue())
		Expect(req.Ack).To(Panic())
	})

	It("should return the ack to the previous hop", func() {
		hop := NewMockHop(mockCtrl)
		req.PushHop(hop)
		hop.EXPECT().AcceptAck(req)

		ReturnAck(req)

		Expect(req.IsHomeNode()).To(BeTrue())
		Expect(req.IsAcked()).To(BeFalse())
	})

	It("should ack the originator when no hop is left", func() {
		originator.EXPECT().ReceiveAck(req)

		ReturnAck(req)

		Expect(req.IsAcked()).To(BeTrue())
	})

	It("should release the hops it skips when acked directly", func() {
		released := []string{}
		plain := NewMockHop(mockCtrl)
		req.PushHop(releasingHop{name: "L1", released: &released})
		req.PushHop(plain)
		req.PushHop(releasingHop{name: "L2", released: &released})
		originator.EXPECT().ReceiveAck(req)

		req.Ack()

		Expect(released).To(Equal([]string{"L2", "L1"}))
		Expect(req.IsHomeNode()).To(BeTrue())
	})
})
