package update

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
