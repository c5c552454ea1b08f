package uvm

import (
	"fmt"
	"sort"
)

// Page is one contiguous mapped region of user virtual memory.
type Page struct {
	Addr uint64
	Size uint64
	Data []byte
}

func (p *Page) String() string {
	return fmt.Sprintf("0x%x-0x%x", p.Addr, p.Addr+p.Size)
}

func (p *Page) Contains(addr uint64) bool {
	return addr >= p.Addr && addr < p.Addr+p.Size
}

// Intersect clips (addr, size) against the page and reports whether any
// overlap remains.
func (p *Page) Intersect(addr, size uint64) (uint64, uint64, bool) {
	start := p.Addr
	end := p.Addr + p.Size
	if e2 := addr + size; end > e2 {
		end = e2
	}
	if start < addr {
		start = addr
	}
	return start, end - start, end > start
}

func (p *Page) Overlaps(addr, size uint64) bool {
	_, _, ok := p.Intersect(addr, size)
	return ok
}

// Pages is kept sorted by address so lookups can binary search.
type Pages []*Page

func (p Pages) Len() int           { return len(p) }
func (p Pages) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p Pages) Less(i, j int) bool { return p[i].Addr < p[j].Addr }

func (p Pages) sort() { sort.Sort(p) }

// Find returns the page containing addr, or nil.
func (p Pages) Find(addr uint64) *Page {
	i := sort.Search(len(p), func(i int) bool {
		return p[i].Addr+p[i].Size > addr
	})
	if i < len(p) && p[i].Contains(addr) {
		return p[i]
	}
	return nil
}
