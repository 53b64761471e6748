package review

// Cursor is the reviewer's position in the record list. Navigation takes a
// cursor in and hands a cursor back; there is no ambient current-record
// state anywhere.
type Cursor int

// Next advances the cursor, staying on the last record at the end.
func (s *Store) Next(c Cursor) Cursor {
	if int(c) < len(s.records)-1 {
		return c + 1
	}
	return c
}

// Prev moves the cursor back, staying on the first record at the start.
func (s *Store) Prev(c Cursor) Cursor {
	if c > 0 {
		return c - 1
	}
	return c
}

// Jump moves the cursor to index. Out-of-range targets leave the cursor
// where it was and report ok=false.
func (s *Store) Jump(c Cursor, index int) (Cursor, bool) {
	if index < 0 || index >= len(s.records) {
		return c, false
	}
	return Cursor(index), true
}
