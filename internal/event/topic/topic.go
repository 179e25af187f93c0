package topic

import "strings"

// Topic is a dot-separated event type such as "buffer.content.inserted".
type Topic string

// Pattern wildcards.
const (
	WildcardSingle = "*"
	WildcardMulti  = "**"
	Separator      = "."
)

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split by the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// IsValid reports whether t is non-empty and has no empty segments.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	for _, seg := range t.Segments() {
		if seg == "" {
			return false
		}
	}
	return true
}

// Matches reports whether t matches pattern. In the pattern "*" stands for
// exactly one segment and "**" for any number of segments, including none.
func (t Topic) Matches(pattern Topic) bool {
	return match(t.Segments(), pattern.Segments())
}

func match(segs, pat []string) bool {
	for len(pat) > 0 {
		switch head := pat[0]; {
		case head == WildcardMulti:
			for i := 0; i <= len(segs); i++ {
				if match(segs[i:], pat[1:]) {
					return true
				}
			}
			return false
		case len(segs) == 0:
			return false
		case head != WildcardSingle && head != segs[0]:
			return false
		}
		segs, pat = segs[1:], pat[1:]
	}
	return len(segs) == 0
}

// Join joins segments into a topic.
func Join(segments ...string) Topic {
	return Topic(strings.Join(segments, Separator))
}
