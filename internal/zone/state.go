package zone

// WorldGenerationState carries the cross-zone generation bookkeeping: the
// running zone counter and the one-time spawn flags. It is an explicit value
// owned by one Generator and serialized wholesale, so "exactly once" is
// testable and survives save/load.
type WorldGenerationState struct {
	ZonesGenerated int  `json:"zonesGenerated"`
	AxePlaced      bool `json:"axePlaced"`
	HammerPlaced   bool `json:"hammerPlaced"`
	NotePlaced     bool `json:"notePlaced"`
	SpecialRoom    bool `json:"specialRoomPlaced"`
}

// rewardFlag reads one named flag.
func (s *WorldGenerationState) rewardFlag(name string) bool {
	switch name {
	case rewardAxe:
		return s.AxePlaced
	case rewardHammer:
		return s.HammerPlaced
	case rewardNote:
		return s.NotePlaced
	case rewardSpecialRoom:
		return s.SpecialRoom
	}
	return true
}

// setRewardFlag flips one named flag; flags never clear within a session.
func (s *WorldGenerationState) setRewardFlag(name string) {
	switch name {
	case rewardAxe:
		s.AxePlaced = true
	case rewardHammer:
		s.HammerPlaced = true
	case rewardNote:
		s.NotePlaced = true
	case rewardSpecialRoom:
		s.SpecialRoom = true
	}
}

const (
	rewardAxe         = "axe"
	rewardHammer      = "hammer"
	rewardNote        = "note"
	rewardSpecialRoom = "specialRoom"
)
