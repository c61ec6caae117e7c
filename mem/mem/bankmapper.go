package mem

// AddressToBankMapper helps a routing stage find the bank that holds the data
// at a certain address.
type AddressToBankMapper interface {
	Find(address uint64) int
}

// SingleBankMapper is used when a stage is connected with only one lower
// module.
type SingleBankMapper struct{}

// Find always returns bank 0.
func (SingleBankMapper) Find(uint64) int {
	return 0
}

// InterleavedBankMapper stripes cache lines over a power-of-two number of
// banks. Consecutive lines go to consecutive stripes; the stripe index wraps
// after InterleaveFactor lines and is then folded onto the banks.
type InterleavedBankMapper struct {
	LineSize         uint64
	InterleaveFactor uint64
	NumBanks         uint64
}

// Find returns the bank that holds the data at the address.
func (m InterleavedBankMapper) Find(address uint64) int {
	return AddrHash(address, m.LineSize, m.InterleaveFactor, m.NumBanks)
}

// AddrHash maps an address to a bank index in [0, numBanks). Addresses that
// differ only in the offset within a line, or by a multiple of
// lineSize*interleaveFactor, map to the same bank. numBanks must be a power
// of two.
func AddrHash(addr, lineSize, interleaveFactor, numBanks uint64) int {
	line := addr / lineSize
	stripe := line % interleaveFactor

	return int(stripe & (numBanks - 1))
}

// IsPowerOfTwo returns true if n is a positive power of two.
func IsPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}
