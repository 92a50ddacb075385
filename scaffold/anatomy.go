package scaffold

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

// The types below mirror the server's project anatomy wire format. The
// mixed key casing (`folder_types` vs `linkTypes`) is what the server
// actually accepts, so it is preserved as-is.

type Root struct {
	Name    string `json:"name"`
	Windows string `json:"windows"`
	Linux   string `json:"linux"`
	Darwin  string `json:"darwin"`
}

type TemplateEntry struct {
	Name      string `json:"name"`
	Directory string `json:"directory"`
	File      string `json:"file"`
}

type Templates struct {
	VersionPadding int             `json:"version_padding"`
	Version        string          `json:"version"`
	FramePadding   int             `json:"frame_padding"`
	Frame          string          `json:"frame"`
	Work           []TemplateEntry `json:"work"`
	Publish        []TemplateEntry `json:"publish"`
	Hero           []TemplateEntry `json:"hero"`
}

type Attributes struct {
	FPS              int      `json:"fps"`
	ResolutionWidth  int      `json:"resolutionWidth"`
	ResolutionHeight int      `json:"resolutionHeight"`
	PixelAspect      int      `json:"pixelAspect"`
	ClipIn           int      `json:"clipIn"`
	ClipOut          int      `json:"clipOut"`
	FrameStart       int      `json:"frameStart"`
	FrameEnd         int      `json:"frameEnd"`
	HandleStart      int      `json:"handleStart"`
	HandleEnd        int      `json:"handleEnd"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Description      string   `json:"description"`
	Applications     []string `json:"applications"`
	Tools            []string `json:"tools"`
}

type FolderType struct {
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	OriginalName string `json:"original_name"`
}

type TaskType struct {
	Name         string `json:"name"`
	ShortName    string `json:"shortName"`
	Icon         string `json:"icon"`
	OriginalName string `json:"original_name"`
}

type LinkType struct {
	Name       string        `json:"name"`
	LinkType   string        `json:"link_type"`
	InputType  string        `json:"input_type"`
	OutputType string        `json:"output_type"`
	Data       ldvalue.Value `json:"data"`
}

type Status struct {
	Name         string `json:"name"`
	ShortName    string `json:"shortName"`
	State        string `json:"state"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	OriginalName string `json:"original_name"`
}

type Anatomy struct {
	Roots       []Root       `json:"roots"`
	Templates   Templates    `json:"templates"`
	Attributes  Attributes   `json:"attributes"`
	FolderTypes []FolderType `json:"folder_types"`
	TaskTypes   []TaskType   `json:"task_types"`
	LinkTypes   []LinkType   `json:"linkTypes"`
	Statuses    []Status     `json:"statuses"`
}

// RepresentationLinkType is the link type the scaffold registers and uses
// to connect representation pairs.
const RepresentationLinkType = "relationship|representation|representation"

var linkTypeData = ldvalue.ObjectBuild().
	Set("color", ldvalue.String("#73149F")).
	Build()

// DefaultAnatomy returns the fixed project anatomy used by every
// scaffold: one work root per platform, default naming templates, one
// folder type, one task type, one representation link type, one status.
func DefaultAnatomy() Anatomy {
	return Anatomy{
		Roots: []Root{
			{
				Name:    "work",
				Windows: "C:/projects",
				Linux:   "/mnt/share/projects",
				Darwin:  "/Volumes/projects",
			},
		},
		Templates: Templates{
			VersionPadding: 3,
			Version:        "v{version:0>{@version_padding}}",
			FramePadding:   4,
			Frame:          "{frame:0>{@frame_padding}}",
			Work: []TemplateEntry{
				{
					Name:      "default",
					Directory: "{root[work]}/{project[name]}/{hierarchy}/{folder[name]}/work/{task[name]}",
					File:      "{project[code]}_{folder[name]}_{task[name]}_{@version}<_{comment}>.{ext}",
				},
			},
			Publish: []TemplateEntry{
				{
					Name:      "default",
					Directory: "{root[work]}/{project[name]}/{hierarchy}/{folder[name]}/publish/{product[type]}/{product[name]}/v{version:0>3}",
					File:      "{project[code]}_{folder[name]}_{product[name]}_v{version:0>3}<_{output}><.{frame:0>4}><_{udim}>.{ext}",
				},
			},
			Hero: []TemplateEntry{
				{
					Name:      "default",
					Directory: "{root[work]}/{project[name]}/{hierarchy}/{folder[name]}/publish/{product[type]}/{product[name]}/hero",
					File:      "{project[code]}_{folder[name]}_{task[name]}_hero<_{comment}>.{ext}",
				},
			},
		},
		Attributes: Attributes{
			FPS:              25,
			ResolutionWidth:  1920,
			ResolutionHeight: 1080,
			PixelAspect:      1,
			ClipIn:           1,
			ClipOut:          1,
			FrameStart:       1001,
			FrameEnd:         1050,
			HandleStart:      0,
			HandleEnd:        0,
			StartDate:        "2021-01-01T00:00:00+00:00",
			EndDate:          "2021-01-01T00:00:00+00:00",
			Description:      "A very nice entity",
			Applications:     []string{},
			Tools:            []string{},
		},
		FolderTypes: []FolderType{
			{Name: "Asset", Icon: "folder", OriginalName: "Asset"},
		},
		TaskTypes: []TaskType{
			{Name: "rendering", ShortName: "rendering", OriginalName: "rendering"},
		},
		LinkTypes: []LinkType{
			{
				Name:       RepresentationLinkType,
				LinkType:   "relationship",
				InputType:  "representation",
				OutputType: "representation",
				Data:       linkTypeData,
			},
		},
		Statuses: []Status{
			{
				Name:         "not_started",
				ShortName:    "not_started",
				State:        "not_started",
				Color:        "#cacaca",
				OriginalName: "string",
			},
		},
	}
}
