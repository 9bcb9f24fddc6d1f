package domain

// HistoryEntry records the board as it was right before a move, so the move can be
// taken back exactly.
type HistoryEntry struct {
	Board  Board
	Mover  PlayerID
	Column int
	Row    int
}

// MoveHistory is a stack of HistoryEntry, oldest first.
type MoveHistory struct {
	entries []HistoryEntry
}

func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = append(h.entries, entry)
}

// Pop removes and returns the most recent entry.
func (h *MoveHistory) Pop() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return last, true
}

func (h *MoveHistory) Peek() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *MoveHistory) Len() int {
	return len(h.entries)
}

func (h *MoveHistory) Clear() {
	h.entries = nil
}

func (h *MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}
