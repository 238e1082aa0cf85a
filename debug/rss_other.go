//go:build !windows

package debug

// residentSetSize returns the RSS of the current process.
func residentSetSize() (uint64, error) {
	p, err := self()
	if err != nil {
		return 0, err
	}
	mi, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mi.RSS, nil
}
