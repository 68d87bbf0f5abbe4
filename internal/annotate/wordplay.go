package annotate

// WordplayType classifies the wordplay device a segment participates in.
// It is an optional attribute of a segment and independent of the mode.
type WordplayType uint8

const (
	// WordplayNone means no classification has been assigned.
	WordplayNone WordplayType = iota
	// WordplayAnagram marks fodder whose letters are rearranged.
	WordplayAnagram
	// WordplayReversal marks text read backwards.
	WordplayReversal
	// WordplayContainer marks one word placed inside another.
	WordplayContainer
	// WordplayHidden marks an answer concealed inside the clue surface.
	WordplayHidden
	// WordplayDeletion marks letters removed from a word.
	WordplayDeletion
	// WordplayInitialLetters marks first letters taken from words.
	WordplayInitialLetters
	// WordplayFinalLetters marks last letters taken from words.
	WordplayFinalLetters
	// WordplayHomophone marks a sound-alike.
	WordplayHomophone
	// WordplayOther covers devices outside the standard list.
	WordplayOther
)

// wordplayCount is the number of values WordplayType cycles through.
const wordplayCount = int(WordplayOther) + 1

// String returns the stable machine name, used for persistence.
func (w WordplayType) String() string {
	switch w {
	case WordplayNone:
		return ""
	case WordplayAnagram:
		return "anagram"
	case WordplayReversal:
		return "reversal"
	case WordplayContainer:
		return "container"
	case WordplayHidden:
		return "hidden"
	case WordplayDeletion:
		return "deletion"
	case WordplayInitialLetters:
		return "initial-letters"
	case WordplayFinalLetters:
		return "final-letters"
	case WordplayHomophone:
		return "homophone"
	case WordplayOther:
		return "other"
	default:
		return ""
	}
}

// DisplayName returns the human-readable name shown in summaries and pickers.
func (w WordplayType) DisplayName() string {
	switch w {
	case WordplayAnagram:
		return "Anagram"
	case WordplayReversal:
		return "Reversal"
	case WordplayContainer:
		return "Container"
	case WordplayHidden:
		return "Hidden word"
	case WordplayDeletion:
		return "Deletion"
	case WordplayInitialLetters:
		return "Initial letters"
	case WordplayFinalLetters:
		return "Final letters"
	case WordplayHomophone:
		return "Homophone"
	case WordplayOther:
		return "Other"
	default:
		return ""
	}
}

// WordplayFromString parses a persisted machine name.
// Unknown names map to WordplayNone.
func WordplayFromString(s string) WordplayType {
	for w := WordplayNone; int(w) < wordplayCount; w++ {
		if w != WordplayNone && w.String() == s {
			return w
		}
	}
	return WordplayNone
}

// Next returns the following classification, wrapping from the last device
// back to none. Used by the UI to cycle with a single key.
func (w WordplayType) Next() WordplayType {
	return WordplayType((int(w) + 1) % wordplayCount)
}
