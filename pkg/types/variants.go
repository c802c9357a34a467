package types

// RVCModelSlot describes an RVC model.
type RVCModelSlot struct {
	ModelSlot
	ModelFile         string  `json:"modelFile"`
	IndexFile         string  `json:"indexFile"`
	DefaultTune       int     `json:"defaultTune"`
	DefaultIndexRatio float64 `json:"defaultIndexRatio"`
	DefaultProtect    float64 `json:"defaultProtect"`
	IsONNX            bool    `json:"isONNX"`
	ModelType         string  `json:"modelType"`
	SamplingRate      int     `json:"samplingRate"`
	F0                bool    `json:"f0"`
	EmbChannels       int     `json:"embChannels"`
	EmbOutputLayer    int     `json:"embOutputLayer"`
	UseFinalProj      bool    `json:"useFinalProj"`
	Deprecated        bool    `json:"deprecated"`
	Embedder          string  `json:"embedder"`
	SampleID          string  `json:"sampleId"`
}

// NewRVCModelSlot returns an RVC slot with defaults applied.
func NewRVCModelSlot() *RVCModelSlot {
	return &RVCModelSlot{
		ModelSlot:      newBase(TypeRVC, map[int]string{0: "target"}),
		DefaultProtect: 0.5,
		ModelType:      ModelTypePyTorchRVC,
		SamplingRate:   -1,
		F0:             true,
		EmbChannels:    256,
		EmbOutputLayer: 9,
		UseFinalProj:   true,
		Embedder:       EmbedderHubertBase,
	}
}

// Type returns TypeRVC.
func (s *RVCModelSlot) Type() VoiceChangerType { return TypeRVC }

// MMVCv13ModelSlot describes an MMVC v1.3 model.
type MMVCv13ModelSlot struct {
	ModelSlot
	ModelFile    string `json:"modelFile"`
	ConfigFile   string `json:"configFile"`
	SrcID        int    `json:"srcId"`
	DstID        int    `json:"dstId"`
	IsONNX       bool   `json:"isONNX"`
	SamplingRate int    `json:"samplingRate"`
}

// NewMMVCv13ModelSlot returns an MMVC v1.3 slot with defaults applied.
func NewMMVCv13ModelSlot() *MMVCv13ModelSlot {
	return &MMVCv13ModelSlot{
		ModelSlot: newBase(TypeMMVCv13, map[int]string{
			107: "user",
			100: "zundamon",
			101: "sora",
			102: "methane",
			103: "tsumugi",
		}),
		SrcID:        107,
		DstID:        100,
		SamplingRate: 24000,
	}
}

// Type returns TypeMMVCv13.
func (s *MMVCv13ModelSlot) Type() VoiceChangerType { return TypeMMVCv13 }

// MMVCv15ModelSlot describes an MMVC v1.5 model. F0 maps speaker IDs to
// their mean fundamental frequency.
type MMVCv15ModelSlot struct {
	ModelSlot
	ModelFile    string          `json:"modelFile"`
	ConfigFile   string          `json:"configFile"`
	SrcID        int             `json:"srcId"`
	DstID        int             `json:"dstId"`
	F0Factor     float64         `json:"f0Factor"`
	IsONNX       bool            `json:"isONNX"`
	SamplingRate int             `json:"samplingRate"`
	F0           map[int]float64 `json:"f0"`
}

// NewMMVCv15ModelSlot returns an MMVC v1.5 slot with defaults applied.
func NewMMVCv15ModelSlot() *MMVCv15ModelSlot {
	return &MMVCv15ModelSlot{
		ModelSlot:    newBase(TypeMMVCv15, map[int]string{}),
		DstID:        101,
		F0Factor:     1.0,
		SamplingRate: 24000,
		F0:           map[int]float64{},
	}
}

// Type returns TypeMMVCv15.
func (s *MMVCv15ModelSlot) Type() VoiceChangerType { return TypeMMVCv15 }

// SoVitsSvc40ModelSlot describes a so-vits-svc 4.0 model.
type SoVitsSvc40ModelSlot struct {
	ModelSlot
	ModelFile                string  `json:"modelFile"`
	ConfigFile               string  `json:"configFile"`
	ClusterFile              string  `json:"clusterFile"`
	DstID                    int     `json:"dstId"`
	IsONNX                   bool    `json:"isONNX"`
	SampleID                 string  `json:"sampleId"`
	DefaultTune              int     `json:"defaultTune"`
	DefaultClusterInferRatio float64 `json:"defaultClusterInferRatio"`
	NoiseScale               float64 `json:"noiseScale"`
}

// NewSoVitsSvc40ModelSlot returns a so-vits-svc 4.0 slot with defaults applied.
func NewSoVitsSvc40ModelSlot() *SoVitsSvc40ModelSlot {
	return &SoVitsSvc40ModelSlot{
		ModelSlot: newBase(TypeSoVitsSvc40, map[int]string{1: "user"}),
	}
}

// Type returns TypeSoVitsSvc40.
func (s *SoVitsSvc40ModelSlot) Type() VoiceChangerType { return TypeSoVitsSvc40 }

// DDSPSVCModelSlot describes a DDSP-SVC model with its optional diffusion
// companion model.
type DDSPSVCModelSlot struct {
	ModelSlot
	ModelFile      string `json:"modelFile"`
	ConfigFile     string `json:"configFile"`
	DiffModelFile  string `json:"diffModelFile"`
	DiffConfigFile string `json:"diffConfigFile"`
	DstID          int    `json:"dstId"`
	IsONNX         bool   `json:"isONNX"`
	SampleID       string `json:"sampleId"`
	DefaultTune    int    `json:"defaultTune"`
	Enhancer       bool   `json:"enhancer"`
	Diffusion      bool   `json:"diffusion"`
	Acc            int    `json:"acc"`
	Kstep          int    `json:"kstep"`
}

// NewDDSPSVCModelSlot returns a DDSP-SVC slot with defaults applied.
func NewDDSPSVCModelSlot() *DDSPSVCModelSlot {
	return &DDSPSVCModelSlot{
		ModelSlot: newBase(TypeDDSPSVC, map[int]string{1: "user"}),
		Diffusion: true,
		Acc:       20,
		Kstep:     100,
	}
}

// Type returns TypeDDSPSVC.
func (s *DDSPSVCModelSlot) Type() VoiceChangerType { return TypeDDSPSVC }

// DiffusionSVCModelSlot describes a Diffusion-SVC model.
type DiffusionSVCModelSlot struct {
	ModelSlot
	ModelFile      string `json:"modelFile"`
	IsONNX         bool   `json:"isONNX"`
	ModelType      string `json:"modelType"`
	DstID          int    `json:"dstId"`
	SampleID       string `json:"sampleId"`
	DefaultTune    int    `json:"defaultTune"`
	DefaultKstep   int    `json:"defaultKstep"`
	DefaultSpeedup int    `json:"defaultSpeedup"`
	KStepMax       int    `json:"kStepMax"`
	NLayers        int    `json:"nLayers"`
	NNLayers       int    `json:"nnLayers"`
	Embedder       string `json:"embedder"`
	SamplingRate   int    `json:"samplingRate"`
	EmbChannels    int    `json:"embChannels"`
}

// NewDiffusionSVCModelSlot returns a Diffusion-SVC slot with defaults applied.
func NewDiffusionSVCModelSlot() *DiffusionSVCModelSlot {
	return &DiffusionSVCModelSlot{
		ModelSlot:      newBase(TypeDiffusionSVC, map[int]string{1: "user"}),
		ModelType:      ModelTypeCombo,
		DstID:          1,
		DefaultKstep:   20,
		DefaultSpeedup: 10,
		KStepMax:       100,
		NLayers:        20,
		NNLayers:       20,
		Embedder:       EmbedderHubertBase,
		SamplingRate:   44100,
		EmbChannels:    768,
	}
}

// Type returns TypeDiffusionSVC.
func (s *DiffusionSVCModelSlot) Type() VoiceChangerType { return TypeDiffusionSVC }
