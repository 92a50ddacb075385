package addon

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/ynput/ayon-test-fixtures/client"
	"github.com/ynput/ayon-test-fixtures/framework"
)

// Installer uploads an addon archive to the server and walks it through
// the install/restart/verify sequence.
type Installer struct {
	// Events waits for the server-side install job. Replaceable so tests
	// can shrink its polling budget.
	Events *client.EventWaiter
	// Restart restarts the server after the install event finishes.
	Restart *client.RestartWaiter

	session *client.Session
	fs      afero.Fs
	logger  framework.Logger
}

type installResponse struct {
	EventID string `json:"eventId"`
}

type installedAddonsResponse struct {
	Items []struct {
		AddonName    string `json:"addonName"`
		AddonVersion string `json:"addonVersion"`
	} `json:"items"`
}

func NewInstaller(session *client.Session, logger framework.Logger) *Installer {
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Installer{
		Events:  client.NewEventWaiter(session, logger),
		Restart: client.NewRestartWaiter(session, logger),
		session: session,
		fs:      afero.NewOsFs(),
		logger:  logger,
	}
}

// Install uploads the archive, waits for the install event to finish,
// restarts the server, and verifies that the addon shows up in the list
// of installed addons.
func (ins *Installer) Install(name, version, archivePath string) error {
	f, err := ins.fs.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening addon archive: %w", err)
	}
	defer f.Close()

	ins.logger.Printf("installing addon %s %s", name, version)
	resp, err := ins.session.PostMultipart(
		"/api/addons/install",
		map[string]string{
			"addonName":    name,
			"addonVersion": version,
		},
		"upload_file", fmt.Sprintf("%s-%s.zip", name, version), f,
	)
	if err != nil {
		return fmt.Errorf("uploading addon: %w", err)
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("failed to install addon: status %d: %s", resp.StatusCode, resp.Body)
	}
	var install installResponse
	if err := resp.JSON(&install); err != nil {
		return fmt.Errorf("malformed install response: %w", err)
	}

	ins.logger.Printf("waiting for the install event to finish")
	if _, err := ins.Events.Wait(install.EventID); err != nil {
		return err
	}

	ins.logger.Printf("restarting server")
	if _, err := ins.Restart.RestartAndWait(); err != nil {
		return err
	}

	return ins.verifyInstalled(name)
}

func (ins *Installer) verifyInstalled(name string) error {
	resp, err := ins.session.Get("/api/addons/install")
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("failed to list installed addons: status %d: %s", resp.StatusCode, resp.Body)
	}
	var installed installedAddonsResponse
	if err := resp.JSON(&installed); err != nil {
		return fmt.Errorf("malformed installed addons response: %w", err)
	}
	var names []string
	for _, item := range installed.Items {
		if item.AddonName == name {
			return nil
		}
		names = append(names, item.AddonName)
	}
	return fmt.Errorf("addon %q not found in installed addons: %v", name, names)
}

// Uninstall removes one installed version of the addon. A 404 is
// tolerated so teardown stays idempotent.
func (ins *Installer) Uninstall(name, version string) error {
	resp, err := ins.session.Delete(fmt.Sprintf("/api/addons/%s/%s", name, version))
	if err != nil {
		return err
	}
	if resp.StatusCode != 204 && resp.StatusCode != 404 {
		return fmt.Errorf("failed to uninstall addon: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
