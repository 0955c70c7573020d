package youtube

// SelectTrack picks the single best track under a fixed descending priority
// list: the first priority language present among the tracks wins. Language
// codes are matched exactly; a track is never assembled from two languages.
func SelectTrack(tracks []CaptionTrack, priority []string) (CaptionTrack, error) {
	for _, lang := range priority {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t, nil
			}
		}
	}
	return CaptionTrack{}, ErrNoCompatibleTrack
}
