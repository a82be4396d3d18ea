package flockerclient

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/djherbis/times"
	"github.com/function61/flocker/pkg/branchid"
	"github.com/function61/flocker/pkg/volumemanager"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
)

type outputFormat string

const (
	formatAuto  outputFormat = "auto" // table for humans, plain for scripts
	formatPlain outputFormat = "plain"
	formatTable outputFormat = "table"
)

func (o outputFormat) resolve() (outputFormat, error) {
	switch o {
	case formatAuto:
		if isatty.IsTerminal(os.Stdout.Fd()) {
			return formatTable, nil
		}

		return formatPlain, nil
	case formatPlain, formatTable:
		return o, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", o)
	}
}

func printVolumes(out io.Writer, manager *volumemanager.Manager, format outputFormat) error {
	return printListing(out, manager, format, manager.ListVolumes, func(branchid.ID) bool { return true })
}

func printBranchesOfVolume(out io.Writer, manager *volumemanager.Manager, volume branchid.VolumeRef, format outputFormat) error {
	return printListing(out, manager, format, func() ([]string, error) {
		return manager.ListBranches(volume)
	}, volume.Contains)
}

func printListing(
	out io.Writer,
	manager *volumemanager.Manager,
	format outputFormat,
	plain func() ([]string, error),
	include func(branchid.ID) bool,
) error {
	format, err := format.resolve()
	if err != nil {
		return err
	}

	if format == formatPlain {
		lines, err := plain()
		if err != nil {
			return err
		}

		for _, line := range lines {
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}
		}

		return nil
	}

	branches, err := manager.Branches()
	if err != nil {
		return err
	}

	tbl := tablewriter.NewWriter(out)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetBorder(false)
	tbl.SetHeader([]string{"Branch", "Owner", "Volume", "Created"})

	for _, branch := range branches {
		if !include(branch) {
			continue
		}

		tbl.Append([]string{
			branchid.FormatForDisplay(branch, manager.LocalOwner()),
			branch.Owner,
			branch.Volume,
			createdAt(filepath.Join(manager.Root().MountRoot, branch.DatasetSuffix())),
		})
	}

	tbl.Render()

	return nil
}

// best-effort, as not all filesystems know when a file was born
func createdAt(mountPath string) string {
	fileInfo, err := os.Stat(mountPath)
	if err != nil {
		return "-"
	}

	// https://unix.stackexchange.com/questions/2802/what-is-the-difference-between-modify-and-change-in-stat-command-context
	allTimes := times.Get(fileInfo)

	maybeCreationTime := fileInfo.ModTime()
	if allTimes.HasBirthTime() {
		maybeCreationTime = allTimes.BirthTime()
	}

	return maybeCreationTime.Format("2006-01-02 15:04")
}
