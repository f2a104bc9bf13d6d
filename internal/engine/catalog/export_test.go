package catalog

// RegisterEmpty lists a module without any line, which Add never does.
func (a *Accumulator) RegisterEmpty(module string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lines[module] = nil
}
