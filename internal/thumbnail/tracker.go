package thumbnail

// State is the per-image retry state.
type State struct {
	Key      string
	VideoRef string
	Title    string
	Current  string
	Tier     Tier
	Terminal bool
	Failures int

	// floor is the lowest-quality cascade index this image has shown.
	floor int
}

// Tracker owns one State per image. It is driven from the UI event loop and
// is not safe for concurrent use.
type Tracker struct {
	resolver *Resolver
	states   map[string]*State
}

func NewTracker(resolver *Resolver) *Tracker {
	if resolver == nil {
		resolver = NewResolver("", "")
	}
	return &Tracker{resolver: resolver, states: make(map[string]*State)}
}

func (t *Tracker) Resolver() *Resolver {
	return t.resolver
}

// Track registers an image with its initial source. Re-tracking a key keeps
// the existing state.
func (t *Tracker) Track(key, videoRef, title, src string) State {
	if s, ok := t.states[key]; ok {
		return *s
	}
	s := &State{Key: key, VideoRef: videoRef, Title: title, floor: -1}
	s.setCurrent(src)
	t.states[key] = s
	return *s
}

func (t *Tracker) State(key string) (State, bool) {
	s, ok := t.states[key]
	if !ok {
		return State{}, false
	}
	return *s, true
}

func (t *Tracker) Current(key string) string {
	if s, ok := t.states[key]; ok {
		return s.Current
	}
	return ""
}

func (t *Tracker) Len() int {
	return len(t.states)
}

// Swap replaces the live source of a non-terminal image, used when a lazy
// image is revealed.
func (t *Tracker) Swap(key, src string) bool {
	s, ok := t.states[key]
	if !ok || s.Terminal || src == "" || src == s.Current {
		return false
	}
	s.setCurrent(src)
	return true
}

// Fail records a load failure for failedURL and advances the image to its next
// source. It reports false when nothing changed: unknown image, missing video
// ref, terminal state, or a stale failure for a URL the image no longer shows.
func (t *Tracker) Fail(key, failedURL string) (string, bool) {
	s, ok := t.states[key]
	if !ok || s.Terminal || s.VideoRef == "" {
		return "", false
	}
	if failedURL != "" && failedURL != s.Current {
		return "", false
	}

	step := t.resolver.Resolve(s.VideoRef, s.Current, s.Title)
	if !step.Terminal && TierIndex(step.Tier) <= s.floor {
		// resume below the lowest-quality tier this image has shown
		step = t.resolver.Resolve(s.VideoRef, t.resolver.URL(s.VideoRef, Cascade[s.floor]), s.Title)
	}
	s.Failures++
	if step.Terminal {
		s.Current = step.URL
		s.Tier = ""
		s.Terminal = true
		return s.Current, true
	}
	s.setCurrent(step.URL)
	return s.Current, true
}

func (s *State) setCurrent(src string) {
	s.Current = src
	s.Tier, _ = TierFromURL(src)
	if idx := TierIndex(s.Tier); idx > s.floor {
		s.floor = idx
	}
}
