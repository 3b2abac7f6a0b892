// Package rendercontext tracks per frame temporary render data and
// releases the data of holders that went unused for a whole frame.
package rendercontext

type TempDataHolder interface {
	ClearTempRenderData()
}

var global = NewStore()

func Use(dh TempDataHolder) { global.Use(dh) }
func Swap()                 { global.Swap() }

type Store struct {
	used    map[TempDataHolder]struct{}
	notUsed map[TempDataHolder]struct{}
}

func NewStore() *Store {
	return &Store{
		used:    make(map[TempDataHolder]struct{}),
		notUsed: make(map[TempDataHolder]struct{}),
	}
}

// Swap ends a frame: holders used in the previous frame but not in this
// one get their data cleared.
func (s *Store) Swap() {
	for dh := range s.notUsed {
		dh.ClearTempRenderData()
	}
	s.notUsed = s.used
	s.used = make(map[TempDataHolder]struct{})
}

func (s *Store) Use(dh TempDataHolder) {
	delete(s.notUsed, dh)
	s.used[dh] = struct{}{}
}

// Len returns the number of holders alive in the current or previous frame.
func (s *Store) Len() int {
	n := len(s.used)
	for dh := range s.notUsed {
		if _, ok := s.used[dh]; !ok {
			n++
		}
	}
	return n
}
