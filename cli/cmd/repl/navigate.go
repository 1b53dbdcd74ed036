package repl

// historyStep moves through history by dir (-1 older, +1 newer), switching
// to the mode each entry was entered in. Moving past the newest entry clears
// the input.
func (m model) historyStep(dir int) model {
	i := m.historyIdx + dir

	switch {
	case dir < 0 && i < 0:
		return m

	case dir > 0 && i >= m.history.Len():
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)

		return m
	}

	entry, err := m.history.GetEntry(i)
	if err != nil {
		return m
	}

	if m.mode != entry.Mode {
		m = m.switchToMode(entry.Mode)
	}

	return m.showEntry(i, entry.Line)
}

// historyInMode moves to the next entry in dir entered in the current mode.
func (m model) historyInMode(dir int) model {
	if i, line, ok := m.seek(dir, m.mode); ok {
		return m.showEntry(i, line)
	}

	if dir > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// historyCtrl switches to command mode and moves to the next command entry
// in dir. Running off either end restores the mode and input in use when
// the navigation began.
func (m model) historyCtrl(dir int) model {
	if !m.altNavActive {
		m.altNavActive = true
		m.altNavOrigMode = m.mode
		m.altNavOrigText = m.input.Value()
		m.altNavOrigCursor = m.input.Position()

		if m.mode != modeCtrl {
			m = m.switchToMode(modeCtrl)
		}
	}

	if i, line, ok := m.seek(dir, modeCtrl); ok {
		return m.showEntry(i, line)
	}

	m.altNavActive = false
	if m.altNavOrigMode != m.mode {
		m = m.switchToMode(m.altNavOrigMode)
	}

	m.input.SetValue(m.altNavOrigText)
	m.input.SetCursor(m.altNavOrigCursor)
	m.historyIdx = m.history.Len()
	refreshMatches(&m, false)

	return m
}

// seek returns the first entry after the current position in dir that was
// entered in mode.
func (m model) seek(dir int, mode inputMode) (int, string, bool) {
	for i := m.historyIdx + dir; i >= 0 && i < m.history.Len(); i += dir {
		if entry, err := m.history.GetEntry(i); err == nil && entry.Mode == mode {
			return i, entry.Line, true
		}
	}

	return 0, "", false
}

func (m model) showEntry(i int, line string) model {
	m.historyIdx = i
	m.input.SetValue(line)
	m.input.SetCursor(len(line))
	refreshMatches(&m, false)

	return m
}
