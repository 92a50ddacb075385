package scaffold

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// FileEntry is one generated file record inside a representation. The
// hash is an md5 of the file *name*, not of any content; no content ever
// exists for these fixtures, so the hash is placeholder metadata only.
type FileEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	Size     int    `json:"size"`
	Hash     string `json:"hash"`
	HashType string `json:"hashType"`
}

// Representation is the creation payload for one representation entity.
type Representation struct {
	Name      string               `json:"name"`
	VersionID string               `json:"versionId"`
	Files     []FileEntry          `json:"files"`
	Data      ldvalue.Value        `json:"data"`
	Attrib    RepresentationAttrib `json:"attrib"`
}

type RepresentationAttrib struct {
	FrameStart int    `json:"frameStart"`
	FrameEnd   int    `json:"frameEnd"`
	Template   string `json:"template"`
}

// fileList generates one file entry per frame over [frameStart, frameEnd).
func fileList(
	projectName, projectCode, folderName, productName string,
	version int, ext string, frameStart, frameEnd int,
) []FileEntry {
	var files []FileEntry
	for frame := frameStart; frame < frameEnd; frame++ {
		name := fmt.Sprintf("%s_%s_%s_v%03d.%04d.%s",
			projectCode, folderName, productName, version, frame, ext)
		sum := md5.Sum([]byte(name))
		id := uuid.New()
		files = append(files, FileEntry{
			ID:       hex.EncodeToString(id[:]),
			Name:     name,
			Path:     fmt.Sprintf("{root[work]}/%s/%s/publish/render/v%03d/%s", projectName, folderName, version, name),
			Size:     100000 + rand.Intn(900001),
			Hash:     hex.EncodeToString(sum[:]),
			HashType: "md5",
		})
	}
	return files
}

// newRepresentation assembles the payload for one representation with a
// generated per-frame file list and the publish-context document the
// server stores alongside it.
func newRepresentation(
	projectName, projectCode, folderName, taskName, productName string,
	version int, versionID string,
	publishTemplate TemplateEntry, workRoot string,
	frameStart, frameEnd int, name string,
) Representation {
	context := ldvalue.ObjectBuild().
		Set("ext", ldvalue.String("exr")).
		Set("root", ldvalue.ObjectBuild().
			Set("work", ldvalue.String(workRoot)).
			Build()).
		Set("task", ldvalue.ObjectBuild().
			Set("name", ldvalue.String(taskName)).
			Set("type", ldvalue.String("Rendering")).
			Set("short", ldvalue.String("rnd")).
			Build()).
		Set("user", ldvalue.String("Test")).
		Set("folder", ldvalue.ObjectBuild().
			Set("name", ldvalue.String(folderName)).
			Build()).
		Set("family", ldvalue.String("render")).
		Set("product", ldvalue.ObjectBuild().
			Set("name", ldvalue.String(productName)).
			Set("type", ldvalue.String("render")).
			Build()).
		Set("project", ldvalue.ObjectBuild().
			Set("code", ldvalue.String(projectCode)).
			Set("name", ldvalue.String(projectName)).
			Build()).
		Set("version", ldvalue.Int(version)).
		Set("username", ldvalue.String("Test")).
		Set("hierarchy", ldvalue.String("")).
		Set("representation", ldvalue.String("exr")).
		Build()

	return Representation{
		Name:      name,
		VersionID: versionID,
		Files: fileList(projectName, projectCode, folderName, productName,
			version, "exr", frameStart, frameEnd),
		Data: ldvalue.ObjectBuild().Set("context", context).Build(),
		Attrib: RepresentationAttrib{
			FrameStart: frameStart,
			FrameEnd:   frameEnd,
			Template:   publishTemplate.Directory + "/" + publishTemplate.File,
		},
	}
}
