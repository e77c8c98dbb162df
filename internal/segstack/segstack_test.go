package segstack

import "testing"

func TestPushPopIsLIFO(t *testing.T) {
	s := New(2)
	s.PushPair(0, 1)
	s.PushPair(2, 3)

	if got := s.Pop(); got.Begin != 2 || got.End != 3 {
		t.Errorf("first Pop = %+v, want {2 3}", got)
	}
	if got := s.Pop(); got.Begin != 0 || got.End != 1 {
		t.Errorf("second Pop = %+v, want {0 1}", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestPeekDoesNotRemove(t *testing.T) {
	s := New(1)
	s.PushPair(4, 5)

	if got := s.Peek(); got.Begin != 4 || got.End != 5 {
		t.Errorf("Peek = %+v, want {4 5}", got)
	}
	if s.Len() != 1 {
		t.Errorf("Len after Peek = %d, want 1", s.Len())
	}
}

func TestPopEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Pop on an empty stack should panic")
		}
	}()
	New(0).Pop()
}

func TestZeroStackIsUsable(t *testing.T) {
	var s Stack
	s.PushPair(1, 2)
	if got := s.Pop(); got.Begin != 1 || got.End != 2 {
		t.Errorf("Pop = %+v, want {1 2}", got)
	}
}
