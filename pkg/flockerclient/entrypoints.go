// The command line interface of the volume manager
package flockerclient

import (
	"errors"
	"fmt"
	"os"

	"github.com/function61/flocker/pkg/volumemanager"
	"github.com/function61/flocker/pkg/zfsengine"
	"github.com/function61/gokit/osutil"
	"github.com/spf13/cobra"
)

var (
	errTagsNotSupported = errors.New("branching off a tag is not supported")
)

func volumeEntrypoint(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "volume [name]",
		Short: "Create a volume and its default trunk branch",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(opts.withManager(func(manager *volumemanager.Manager) error {
				return manager.CreateVolume(args[0])
			}))
		},
	}
}

func listVolumesEntrypoint(opts *GlobalOptions) *cobra.Command {
	format := string(formatAuto)

	cmd := &cobra.Command{
		Use:   "list-volumes",
		Short: "List volumes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(opts.withManager(func(manager *volumemanager.Manager) error {
				return printVolumes(os.Stdout, manager, outputFormat(format))
			}))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", format, "Output format: auto, plain or table")

	return cmd
}

func branchEntrypoint(opts *GlobalOptions) *cobra.Command {
	fromBranch := ""
	fromTag := ""

	cmd := &cobra.Command{
		Use:   "branch [newBranch]",
		Short: "Create a branch",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(validateBranchSource(fromBranch, fromTag))

			osutil.ExitIfError(opts.withManager(func(manager *volumemanager.Manager) error {
				from, err := manager.ParseReference(fromBranch)
				if err != nil {
					return err
				}

				destination, err := manager.ParseReference(args[0])
				if err != nil {
					return err
				}

				return manager.BranchOffBranch(destination, from)
			}))
		},
	}

	cmd.Flags().StringVarP(&fromTag, "tag", "", fromTag, "The tag to branch off of")
	cmd.Flags().StringVarP(&fromBranch, "branch", "", fromBranch, "The branch to branch off of")

	return cmd
}

func validateBranchSource(fromBranch string, fromTag string) error {
	switch {
	case fromTag != "" && fromBranch != "":
		return errors.New("only one of 'tag' and 'branch' should be chosen")
	case fromTag != "":
		return errTagsNotSupported
	case fromBranch == "":
		return errors.New("one of 'tag' and 'branch' is required")
	default:
		return nil
	}
}

func listBranchesEntrypoint(opts *GlobalOptions) *cobra.Command {
	format := string(formatAuto)

	cmd := &cobra.Command{
		Use:   "list-branches [volume]",
		Short: "List branches of a volume",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(opts.withManager(func(manager *volumemanager.Manager) error {
				volume, err := manager.ParseVolumeReference(args[0])
				if err != nil {
					return err
				}

				return printBranchesOfVolume(os.Stdout, manager, volume, outputFormat(format))
			}))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", format, "Output format: auto, plain or table")

	return cmd
}

func mountCheckEntrypoint(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mount-check",
		Short: "Checks that the pool is mounted where we expect it",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(opts.withManager(func(manager *volumemanager.Manager) error {
				root := manager.Root()

				mountPoint, found, err := zfsengine.MountPointForPool(root.Name)
				if err != nil {
					return err
				}

				if err := checkMountPoint(root, mountPoint, found); err != nil {
					return err
				}

				fmt.Printf("pool %s mounted at %s\n", root.Name, mountPoint)

				return nil
			}))
		},
	}
}

func checkMountPoint(root volumemanager.PoolRoot, mountPoint string, found bool) error {
	if !found {
		return fmt.Errorf("pool %s is not mounted (expected at %s)", root.Name, root.MountRoot)
	}

	if mountPoint != root.MountRoot {
		return fmt.Errorf(
			"pool %s is mounted at %s but mount root is %s; use --mount-root",
			root.Name,
			mountPoint,
			root.MountRoot)
	}

	return nil
}

func Entrypoints(opts *GlobalOptions) []*cobra.Command {
	return []*cobra.Command{
		volumeEntrypoint(opts),
		listVolumesEntrypoint(opts),
		branchEntrypoint(opts),
		listBranchesEntrypoint(opts),
		mountCheckEntrypoint(opts),
		configEntrypoint(),
	}
}
