package chat

// DefaultHistoryCapacity bounds the number of buffered chat messages.
const DefaultHistoryCapacity = 100

// History is a fixed-capacity FIFO of the most recent messages. Once full,
// each Append evicts the oldest entry. It is not safe for concurrent use;
// the hub goroutine owns it.
type History struct {
	buf   []Message
	start int
	size  int
}

// NewHistory returns an empty History holding at most capacity messages.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{buf: make([]Message, capacity)}
}

func (h *History) Append(m Message) {
	idx := (h.start + h.size) % len(h.buf)
	h.buf[idx] = m

	if h.size < len(h.buf) {
		h.size++
		return
	}
	h.start = (h.start + 1) % len(h.buf)
}

// Recent returns up to n of the newest messages, oldest first.
func (h *History) Recent(n int) []Message {
	if n > h.size {
		n = h.size
	}
	if n <= 0 {
		return []Message{}
	}

	out := make([]Message, n)
	first := h.start + h.size - n
	for i := 0; i < n; i++ {
		out[i] = h.buf[(first+i)%len(h.buf)]
	}
	return out
}

func (h *History) Len() int { return h.size }

func (h *History) Cap() int { return len(h.buf) }
