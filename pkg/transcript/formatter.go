package transcript

import "strings"

// GroupTurns flags the first utterance of every speaker run so the speaker
// label is shown once per run. The flat order is left untouched.
func GroupTurns(utts []Utterance) []Turn {
	turns := make([]Turn, 0, len(utts))
	for i, u := range utts {
		turns = append(turns, Turn{
			Utterance:   u,
			ShowSpeaker: i == 0 || u.Speaker != utts[i-1].Speaker,
		})
	}
	return turns
}

// GroupBubbles folds consecutive utterances of the same speaker into one
// chat row. Runs of the same speaker that are not adjacent stay separate.
func GroupBubbles(utts []Utterance, speakers SpeakerSet) []BubbleRow {
	var rows []BubbleRow
	for i, u := range utts {
		if i == 0 || u.Speaker != utts[i-1].Speaker {
			color, _ := speakers.ColorOf(u.Speaker)
			rows = append(rows, BubbleRow{
				Speaker: u.Speaker,
				Color:   color,
				IsSelf:  IsSelf(u.Speaker),
			})
		}

		row := &rows[len(rows)-1]
		row.Bubbles = append(row.Bubbles, Bubble{
			Sentence:  u.Sentence,
			StartTime: u.StartTime,
		})
	}
	return rows
}

// CopyText formats the transcript for the clipboard: one
// "[speaker]: sentence" line per utterance, or the raw text as stored.
func (t *Transcript) CopyText() string {
	switch t.State {
	case StateRawText:
		return t.Text
	case StateEmpty:
		return ""
	}

	lines := make([]string, 0, len(t.Utterances))
	for _, u := range t.Utterances {
		if u.Speaker == "" {
			lines = append(lines, u.Sentence)
			continue
		}
		lines = append(lines, "["+u.Speaker+"]: "+u.Sentence)
	}
	return strings.Join(lines, "\n")
}

// DialogueText merges every speaker run into a single "Speaker: text" line.
func (t *Transcript) DialogueText() string {
	switch t.State {
	case StateRawText:
		return t.Text
	case StateEmpty:
		return ""
	}

	var result []string
	var currentText string
	for i, turn := range t.Turns {
		content := strings.TrimSpace(turn.Sentence)
		if i > 0 && !turn.ShowSpeaker {
			// Same speaker, append content
			if content != "" {
				currentText = strings.TrimSpace(currentText + " " + content)
			}
			continue
		}
		if i > 0 {
			result = append(result, dialogueLine(t.Turns[i-1].Speaker, currentText))
		}
		currentText = content
	}
	if len(t.Turns) > 0 {
		result = append(result, dialogueLine(t.Turns[len(t.Turns)-1].Speaker, currentText))
	}

	return strings.Join(result, "\n")
}

func dialogueLine(speaker, text string) string {
	if speaker == "" {
		return text
	}
	return speaker + ": " + text
}
