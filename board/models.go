// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package board

// Supported board models.
const (
	ClaraAGXXavier = "CLARA_AGX_XAVIER"
	JetsonNX       = "JETSON_NX"
	JetsonXavier   = "JETSON_XAVIER"
	JetsonTX2      = "JETSON_TX2"
	JetsonTX1      = "JETSON_TX1"
	JetsonNano     = "JETSON_NANO"
	JetsonTX2NX    = "JETSON_TX2_NX"
	JetsonOrin     = "JETSON_ORIN"
)

// model contains the static description of a board model.
type model struct {
	name string

	// device-tree compatible strings identifying the module.
	compats []string

	// plugin-manager id prefixes of the developer kit carrier boards.
	carriers []string

	info Info
	pins []pinDefinition
}

// models is ordered by detection precedence.
var models = []model{
	{
		name: JetsonOrin,
		compats: []string{
			"nvidia,p3737-0000+p3701-0000",
			"nvidia,p3737-0000+p3701-0004",
		},
		carriers: []string{"3737", "0000"},
		info: Info{
			P1Revision:   1,
			RAM:          "32768M, 65536M",
			Revision:     "Unknown",
			Type:         "JETSON_ORIN",
			Manufacturer: "NVIDIA",
			Processor:    "A78AE",
		},
		pins: jetsonOrinPins,
	},
	{
		name:     ClaraAGXXavier,
		compats:  []string{"nvidia,e3900-0000+p2888-0004"},
		carriers: []string{"3900"},
		info: Info{
			P1Revision:   1,
			RAM:          "16384M",
			Revision:     "Unknown",
			Type:         "CLARA_AGX_XAVIER",
			Manufacturer: "NVIDIA",
			Processor:    "ARM Carmel",
		},
	},
	{
		name: JetsonNX,
		compats: []string{
			"nvidia,p3509-0000+p3668-0000",
			"nvidia,p3509-0000+p3668-0001",
			"nvidia,p3449-0000+p3668-0000",
			"nvidia,p3449-0000+p3668-0001",
			"nvidia,p3449-0000+p3668-0003",
		},
		carriers: []string{"3509", "3449"},
		info: Info{
			P1Revision:   1,
			RAM:          "16384M, 8192M",
			Revision:     "Unknown",
			Type:         "Jetson NX",
			Manufacturer: "NVIDIA",
			Processor:    "ARM Carmel",
		},
		pins: jetsonNXPins,
	},
	{
		name: JetsonXavier,
		compats: []string{
			"nvidia,p2972-0000",
			"nvidia,p2972-0006",
			"nvidia,jetson-xavier",
			"nvidia,galen-industrial",
			"nvidia,jetson-xavier-industrial",
		},
		carriers: []string{"2822"},
		info: Info{
			P1Revision:   1,
			RAM:          "65536M, 32768M, 16384M, 8192M",
			Revision:     "Unknown",
			Type:         "Jetson Xavier",
			Manufacturer: "NVIDIA",
			Processor:    "ARM Carmel",
		},
	},
	{
		name:     JetsonTX2NX,
		compats:  []string{"nvidia,p3509-0000+p3636-0001"},
		carriers: []string{"3509"},
		info: Info{
			P1Revision:   1,
			RAM:          "4096M",
			Revision:     "Unknown",
			Type:         "Jetson TX2 NX",
			Manufacturer: "NVIDIA",
			Processor:    "ARM A57 + Denver",
		},
	},
	{
		name: JetsonTX2,
		compats: []string{
			"nvidia,p2771-0000",
			"nvidia,p2771-0888",
			"nvidia,p3489-0000",
			"nvidia,lightning",
			"nvidia,quill",
			"nvidia,storm",
		},
		carriers: []string{"2597"},
		info: Info{
			P1Revision:   1,
			RAM:          "8192M, 4096M",
			Revision:     "Unknown",
			Type:         "Jetson TX2",
			Manufacturer: "NVIDIA",
			Processor:    "ARM A57 + Denver",
		},
	},
	{
		name:     JetsonTX1,
		compats:  []string{"nvidia,p2371-2180", "nvidia,jetson-cv"},
		carriers: []string{"2597"},
		info: Info{
			P1Revision:   1,
			RAM:          "4096M",
			Revision:     "Unknown",
			Type:         "Jetson TX1",
			Manufacturer: "NVIDIA",
			Processor:    "ARM A57",
		},
	},
	{
		name: JetsonNano,
		compats: []string{
			"nvidia,p3450-0000",
			"nvidia,p3450-0002",
			"nvidia,jetson-nano",
		},
		carriers: []string{"3449", "3542"},
		info: Info{
			P1Revision:   1,
			RAM:          "4096M, 2048M",
			Revision:     "Unknown",
			Type:         "Jetson Nano",
			Manufacturer: "NVIDIA",
			Processor:    "ARM A57",
		},
	},
}

func findModel(name string) (model, bool) {
	for _, m := range models {
		if m.name == name {
			return m, true
		}
	}
	return model{}, false
}

// Models returns the names of the supported board models.
func Models() []string {
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.name
	}
	return names
}

// ModelInfo returns the Info for the named model.
func ModelInfo(name string) (Info, bool) {
	m, ok := findModel(name)
	return m.info, ok
}
