package archive

// UnbackedEntry returns an entry whose backing is neither a file nor a module.
func UnbackedEntry(path string) Entry {
	return Entry{Path: path, kind: moduleBacked + 1}
}
