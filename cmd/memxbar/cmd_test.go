package main

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"
)

var _ = Describe("Commands", func() {
	execute := func(args ...string) string {
		configs := rootCmd.PersistentFlags().Lookup("config")
		Expect(configs.Value.(pflag.SliceValue).Replace(nil)).To(Succeed())

		out := new(bytes.Buffer)
		rootCmd.SetOut(out)
		rootCmd.SetArgs(args)

		Expect(rootCmd.Execute()).To(Succeed())

		return out.String()
	}

	It("should print the structure of a hierarchy", func() {
		out := execute("check", "--quiet",
			"--config", "configs/l2xbar.env", "--top", "L2XBar")

		Expect(out).To(ContainSubstring(
			"L2XBar: 4 banks, line size 64, interleave 4"))
		Expect(out).To(ContainSubstring("[3] L2Bank(3)"))
		Expect(out).To(ContainSubstring(
			"balance: 0 (1 crossbars, 1 de-crossbars)"))
	})

	It("should give the same results for the same seed", func() {
		args := []string{"run", "--quiet",
			"--config", "configs/l2xbar.env", "--top", "L2XBar",
			"--num-reqs", "200", "--seed", "5"}

		first := execute(args...)
		second := execute(args...)

		Expect(first).To(ContainSubstring("completed 200 requests"))
		Expect(first).To(Equal(second))
	})

	It("should reject trace arguments that cannot produce addresses", func() {
		Expect(checkTraceArgs(10, 1<<20)).To(Succeed())
		Expect(checkTraceArgs(-1, 1<<20)).
			To(MatchError(ContainSubstring("num-reqs")))
		Expect(checkTraceArgs(10, 2)).
			To(MatchError(ContainSubstring("max-address")))
	})

	It("should list the sections no object was built from", func() {
		extra := filepath.Join(GinkgoT().TempDir(), "extra.env")
		Expect(os.WriteFile(extra,
			[]byte("L1.deviceType=idealbank\nL1.lowerLevel=L2XBar\n"),
			0o644)).To(Succeed())

		out := execute("check", "--quiet",
			"--config", "configs/l2xbar.env", "--config", extra,
			"--top", "L2XBar")

		Expect(out).To(ContainSubstring("unused sections: [L1]"))
	})
})
