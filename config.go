package main

import (
	"errors"
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"github.com/ttpr0/go-expansion/costing"
	. "github.com/ttpr0/go-expansion/util"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) Config {
	slog.Info("Reading config file")
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file: " + err.Error())
		panic(err)
	}
	var config Config
	yaml.Unmarshal(data, &config)
	return config
}

type Config struct {
	Graph struct {
		OSM      string `yaml:"osm"`
		File     string `yaml:"file"`
		Timezone string `yaml:"timezone"`
	} `yaml:"graph"`
	Snap struct {
		Radius        float64 `yaml:"radius"`
		MaxCandidates int     `yaml:"max-candidates"`
	} `yaml:"snap"`
	Profiles Dict[string, *ProfileOptions] `yaml:"profiles"`
	Services struct {
		Isochrone struct {
			MaxSeconds float32 `yaml:"max-seconds"`
		} `yaml:"isochrone"`
		Matrix struct {
			MaxSeconds float32 `yaml:"max-seconds"`
		} `yaml:"matrix"`
		Reach struct {
			MaxReach  uint32 `yaml:"max-reach"`
			CostAware bool   `yaml:"cost-aware"`
		} `yaml:"reach"`
	} `yaml:"services"`
}

//**********************************************************
// profile options
//**********************************************************

type ProfileOptions struct {
	Value IProfileOptions
}

func (self *ProfileOptions) UnmarshalYAML(value *yaml.Node) error {
	m := map[string]interface{}{}
	if err := value.Decode(&m); err != nil {
		return err
	}
	typ, ok := m["type"].(string)
	if !ok {
		return errors.New("profile is missing a type")
	}
	profile_type, err := ProfileTypeFromString(typ)
	if err != nil {
		return err
	}
	switch profile_type {
	case DRIVING:
		val := DrivingOptions{}
		value.Decode(&val)
		self.Value = val
	case WALKING:
		val := WalkingOptions{}
		value.Decode(&val)
		self.Value = val
	case TRANSIT:
		val := TransitProfileOptions{}
		value.Decode(&val)
		self.Value = val
	default:
		self.Value = nil
	}
	return nil
}

type IProfileOptions interface {
	Type() ProfileType
}

type DrivingOptions struct {
	Auto costing.AutoOptions `yaml:",inline"`
}

func (self DrivingOptions) Type() ProfileType {
	return DRIVING
}

type WalkingOptions struct {
	Pedestrian costing.PedestrianOptions `yaml:",inline"`
}

func (self WalkingOptions) Type() ProfileType {
	return WALKING
}

type TransitProfileOptions struct {
	Transit costing.TransitOptions `yaml:",inline"`
}

func (self TransitProfileOptions) Type() ProfileType {
	return TRANSIT
}

//**********************************************************
// enums
//**********************************************************

type ProfileType byte

const (
	DRIVING ProfileType = 0
	WALKING ProfileType = 1
	TRANSIT ProfileType = 2
)

func (self ProfileType) String() string {
	switch self {
	case DRIVING:
		return "driving"
	case WALKING:
		return "walking"
	case TRANSIT:
		return "transit"
	default:
		panic("unknown profile type")
	}
}

func ProfileTypeFromString(s string) (ProfileType, error) {
	switch s {
	case "driving":
		return DRIVING, nil
	case "walking":
		return WALKING, nil
	case "transit":
		return TRANSIT, nil
	default:
		return DRIVING, errors.New("unknown profile type")
	}
}

//**********************************************************
// costing setup
//**********************************************************

// Builds the per-mode costing array from the configured profiles.
func BuildModeCosting(config Config) [costing.MAX_TRAVEL_MODE]costing.DynamicCost {
	var mode_costing [costing.MAX_TRAVEL_MODE]costing.DynamicCost

	auto_opts := costing.AutoOptions{}
	pedestrian_opts := costing.PedestrianOptions{}
	transit_opts := costing.TransitOptions{}
	for _, profile := range config.Profiles {
		if profile == nil || profile.Value == nil {
			continue
		}
		switch opts := profile.Value.(type) {
		case DrivingOptions:
			auto_opts = opts.Auto
		case WalkingOptions:
			pedestrian_opts = opts.Pedestrian
		case TransitProfileOptions:
			transit_opts = opts.Transit
		}
	}

	mode_costing[costing.DRIVE] = costing.NewAutoCost(auto_opts)
	mode_costing[costing.PEDESTRIAN] = costing.NewPedestrianCost(pedestrian_opts)
	// bicycle shares the pedestrian model until a dedicated costing exists
	mode_costing[costing.BICYCLE] = costing.NewPedestrianCost(pedestrian_opts)
	mode_costing[costing.PUBLIC_TRANSIT] = costing.NewTransitCost(transit_opts)
	return mode_costing
}
