package handlers

// Socket.io delivers JSON objects as map[string]interface{}. These helpers
// pull typed fields out without panicking on malformed client input;
// missing fields come back zero-valued and the directory's own validation
// rejects the command.

func payloadMap(args []interface{}) (map[string]interface{}, bool) {
	if len(args) < 1 {
		return nil, false
	}
	m, ok := args[0].(map[string]interface{})
	return m, ok
}

func stringField(m map[string]interface{}, key string) string {
	v, ok := m[key].(string)
	if !ok {
		return ""
	}
	return v
}

func stringSliceField(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}
