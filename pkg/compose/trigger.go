package compose

// Trigger is a character that opens a completion domain in the input.
type Trigger rune

const (
	Emoji   Trigger = ':'
	Stream  Trigger = '#'
	Mention Trigger = '@'
)

// silentMarker follows a mention trigger for a mention that does not notify.
const silentMarker = '_'

// triggers is the fixed set scanned by Locate.
var triggers = [...]Trigger{Emoji, Stream, Mention}

// Domain names the kind of suggestion a trigger completes.
func (t Trigger) Domain() string {
	switch t {
	case Emoji:
		return "emoji"
	case Stream:
		return "stream"
	case Mention:
		return "mention"
	}
	return ""
}

func (t Trigger) String() string {
	if t == 0 {
		return ""
	}
	return string(rune(t))
}

// ParseTrigger maps a single-character string back to its Trigger.
func ParseTrigger(s string) (Trigger, bool) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, false
	}
	for _, t := range triggers {
		if rune(t) == r[0] {
			return t, true
		}
	}
	return 0, false
}

// Locate returns the trigger closest to the end of head and its character
// index. ok is false when head holds none of the trigger characters.
func Locate(head string) (t Trigger, index int, ok bool) {
	return locateRunes([]rune(head))
}

func locateRunes(head []rune) (Trigger, int, bool) {
	for i := len(head) - 1; i >= 0; i-- {
		for _, t := range triggers {
			if head[i] == rune(t) {
				return t, i, true
			}
		}
	}
	return 0, -1, false
}
