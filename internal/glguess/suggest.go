package glguess

// ranking accumulates suggestions in proposal order. Proposing an account
// that is already listed keeps its position and raises its confidence if the
// new one is higher.
type ranking struct {
	list []Suggestion
	pos  map[int64]int
}

func newRanking() *ranking {
	return &ranking{pos: make(map[int64]int)}
}

func (r *ranking) propose(id int64, confidence float64, source string) {
	if id <= 0 {
		return
	}
	if i, ok := r.pos[id]; ok {
		if confidence > r.list[i].Confidence {
			r.list[i].Confidence = confidence
			r.list[i].Source = source
		}
		return
	}
	r.pos[id] = len(r.list)
	r.list = append(r.list, Suggestion{ID: id, Confidence: confidence, Source: source})
}

func (r *ranking) suggestions() []Suggestion {
	if r.list == nil {
		return []Suggestion{}
	}
	return r.list
}
