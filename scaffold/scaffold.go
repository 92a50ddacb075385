// Package scaffold creates and tears down a disposable test project on
// the server: one project with a fixed anatomy, filled with a folder, a
// task, a product, a version, four representations, and two links, then
// removed by a single cascading project delete.
package scaffold

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mathrand "math/rand"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/ynput/ayon-test-fixtures/client"
	"github.com/ynput/ayon-test-fixtures/framework"
)

// IdNamePair pairs a server-assigned entity ID with the name used to
// create it.
type IdNamePair struct {
	ID   string
	Name string
}

// ProjectInfo describes everything a scaffold created. All IDs are taken
// verbatim from the server's creation responses.
type ProjectInfo struct {
	ProjectName     string
	ProjectCode     string
	RootFolders     map[string]string
	Folder          IdNamePair
	Task            IdNamePair
	Product         IdNamePair
	Version         IdNamePair
	Representations []IdNamePair
	Links           []string
}

// Project is a live scaffold on the server. Call Teardown when done.
type Project struct {
	Info ProjectInfo

	session *client.Session
	logger  framework.Logger
}

// Builder creates scaffold projects through a server session.
type Builder struct {
	session *client.Session
	logger  framework.Logger
}

func NewBuilder(session *client.Session, logger framework.Logger) *Builder {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Builder{session: session, logger: logger}
}

type createProjectRequest struct {
	Name    string  `json:"name"`
	Code    string  `json:"code"`
	Anatomy Anatomy `json:"anatomy"`
	Library bool    `json:"library"`
}

type createFolderRequest struct {
	Name       string `json:"name"`
	FolderType string `json:"folderType"`
}

type createTaskRequest struct {
	Name     string `json:"name"`
	TaskType string `json:"taskType"`
	FolderID string `json:"folderId"`
}

type createProductRequest struct {
	Name        string `json:"name"`
	FolderID    string `json:"folderId"`
	ProductType string `json:"productType"`
}

type createVersionRequest struct {
	Version   int    `json:"version"`
	ProductID string `json:"productId"`
	TaskID    string `json:"taskId"`
}

type createLinkRequest struct {
	Input    string        `json:"input"`
	Output   string        `json:"output"`
	Name     string        `json:"name"`
	Link     string        `json:"link"`
	LinkType string        `json:"linkType"`
	Data     ldvalue.Value `json:"data"`
}

type createdEntity struct {
	ID string `json:"id"`
}

// Create builds the whole scaffold. Every step checks the expected
// success status and stops the chain on the first mismatch; entities
// already created are not rolled back (the cascading project delete in
// Teardown is the only cleanup).
func (b *Builder) Create() (*Project, error) {
	token := randomHex(5)
	projectName := token + "_test_project"
	projectCode := "TP_" + token[:3]
	folderName := "t_folder_" + randomHex(3)
	productName := "renderMain"
	taskName := "rendering"
	versionNumber := 1

	anatomy := DefaultAnatomy()

	b.logger.Printf("creating project %s", projectName)
	resp, err := b.session.Post("/api/projects", createProjectRequest{
		Name:    projectName,
		Code:    projectCode,
		Anatomy: anatomy,
		Library: false,
	})
	if err := expectStatus(resp, err, 201, "create project"); err != nil {
		return nil, err
	}

	// The server does not register anatomy link types on project
	// creation, so the type has to be put in place explicitly before any
	// link is created.
	resp, err = b.session.Put(
		fmt.Sprintf("/api/projects/%s/links/types/%s", projectName, RepresentationLinkType),
		map[string]ldvalue.Value{"data": linkTypeData},
	)
	if err := expectStatus(resp, err, 204, "create link type"); err != nil {
		return nil, err
	}

	b.logger.Printf("filling project %s with data", projectName)
	resp, err = b.session.Post(
		fmt.Sprintf("/api/projects/%s/folders", projectName),
		createFolderRequest{Name: folderName, FolderType: "Asset"},
	)
	if err := expectStatus(resp, err, 201, "create folder"); err != nil {
		return nil, err
	}
	folderID, err := entityID(resp)
	if err != nil {
		return nil, err
	}

	resp, err = b.session.Post(
		fmt.Sprintf("/api/projects/%s/tasks", projectName),
		createTaskRequest{Name: taskName, TaskType: "rendering", FolderID: folderID},
	)
	if err := expectStatus(resp, err, 201, "create task"); err != nil {
		return nil, err
	}
	taskID, err := entityID(resp)
	if err != nil {
		return nil, err
	}

	resp, err = b.session.Post(
		fmt.Sprintf("/api/projects/%s/products", projectName),
		createProductRequest{Name: productName, FolderID: folderID, ProductType: "render"},
	)
	if err := expectStatus(resp, err, 201, "create product"); err != nil {
		return nil, err
	}
	productID, err := entityID(resp)
	if err != nil {
		return nil, err
	}

	resp, err = b.session.Post(
		fmt.Sprintf("/api/projects/%s/versions", projectName),
		createVersionRequest{Version: versionNumber, ProductID: productID, TaskID: taskID},
	)
	if err := expectStatus(resp, err, 201, "create version"); err != nil {
		return nil, err
	}
	versionID, err := entityID(resp)
	if err != nil {
		return nil, err
	}

	var representations []IdNamePair
	for i := 1; i <= 4; i++ {
		repName := fmt.Sprintf("exr_%d", i)
		rep := newRepresentation(
			projectName, projectCode, folderName, taskName, productName,
			versionNumber, versionID,
			anatomy.Templates.Publish[0], anatomy.Roots[0].Windows,
			1001, 1020+mathrand.Intn(181), repName,
		)
		resp, err = b.session.Post(
			fmt.Sprintf("/api/projects/%s/representations", projectName), rep)
		if err := expectStatus(resp, err, 201, "create representation"); err != nil {
			return nil, err
		}
		repID, err := entityID(resp)
		if err != nil {
			return nil, err
		}
		b.logger.Printf("created representation %s with %d files", repName, len(rep.Files))
		representations = append(representations, IdNamePair{ID: repID, Name: repName})
	}

	var links []string
	linkPairs := [][2]int{{0, 1}, {2, 3}}
	for i, pair := range linkPairs {
		resp, err = b.session.Post(
			fmt.Sprintf("/api/projects/%s/links", projectName),
			createLinkRequest{
				Input:    representations[pair[0]].ID,
				Output:   representations[pair[1]].ID,
				Name:     fmt.Sprintf("relationship_%d", len(linkPairs)-i),
				Link:     RepresentationLinkType,
				LinkType: RepresentationLinkType,
				Data:     ldvalue.ObjectBuild().Build(),
			},
		)
		if err := expectStatus(resp, err, 200, "create link"); err != nil {
			return nil, err
		}
		linkID, err := entityID(resp)
		if err != nil {
			return nil, err
		}
		links = append(links, linkID)
	}

	root := anatomy.Roots[0]
	return &Project{
		Info: ProjectInfo{
			ProjectName: projectName,
			ProjectCode: projectCode,
			RootFolders: map[string]string{
				"windows": root.Windows,
				"linux":   root.Linux,
				"darwin":  root.Darwin,
			},
			Folder:          IdNamePair{ID: folderID, Name: folderName},
			Task:            IdNamePair{ID: taskID, Name: taskName},
			Product:         IdNamePair{ID: productID, Name: productName},
			Version:         IdNamePair{ID: versionID, Name: fmt.Sprintf("v%03d", versionNumber)},
			Representations: representations,
			Links:           links,
		},
		session: b.session,
		logger:  b.logger,
	}, nil
}

// Teardown deletes the project; the server cascades the delete to every
// nested entity.
func (p *Project) Teardown() error {
	p.logger.Printf("tearing down project %s", p.Info.ProjectName)
	resp, err := p.session.Delete("/api/projects/" + p.Info.ProjectName)
	return expectStatus(resp, err, 204, "delete project")
}

func expectStatus(resp *client.Response, err error, want int, what string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if resp.StatusCode != want {
		return fmt.Errorf("%s: expected status %d, got %d: %s", what, want, resp.StatusCode, resp.Body)
	}
	return nil
}

func entityID(resp *client.Response) (string, error) {
	var created createdEntity
	if err := resp.JSON(&created); err != nil {
		return "", fmt.Errorf("malformed creation response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("creation response carried no id: %s", resp.Body)
	}
	return created.ID, nil
}

func randomHex(nbytes int) string {
	buf := make([]byte, nbytes)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
