package model

type TransformationType int

const (
	TransformStandard TransformationType = iota
	TransformInversion
	TransformPercentage
	TransformSwitchTonality
)

type TransformationOptions struct {
	Type            TransformationType
	Inversion       int
	Percentage      float64
	UseVoiceLeading bool
}

func NewTransformationOptions() TransformationOptions {
	return TransformationOptions{
		Type:            TransformStandard,
		Inversion:       0,
		Percentage:      100.0,
		UseVoiceLeading: true,
	}
}

// VoiceLeadingOptions tune the voicing search itself.
type VoiceLeadingOptions struct {
	AvoidParallels     bool
	MaintainVoiceCount bool
	MinimizeMovement   bool
	MaxVoiceMovement   int
}

func NewVoiceLeadingOptions() VoiceLeadingOptions {
	return VoiceLeadingOptions{
		AvoidParallels:     false,
		MaintainVoiceCount: true,
		MinimizeMovement:   false,
		MaxVoiceMovement:   7,
	}
}

// VoiceMovement describes how one voice moved during a re-voicing.
type VoiceMovement struct {
	OriginalPitch uint8
	NewPitch      uint8
	Movement      int
	SmallestMove  bool
}
