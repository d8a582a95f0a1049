// Package sandbox manages the fast scratch volume and the per-worker
// enclosures created inside it: acquiring a RAM-backed (or plain
// directory) working area, installing the static model fragments into
// each enclosure, and releasing everything atomically when a run ends.
package sandbox

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/pbnjay/memory"

	"github.com/katalvlaran/gatherspin/internal/promela"
	"github.com/katalvlaran/gatherspin/internal/xerrors"
)

// minFreeMemoryHeadroomMB is the minimum free RAM, beyond the requested
// volume size itself, that must remain available before a RAM-backed
// backend (ramdisk/tmpfs) is attempted. Below this headroom Acquire falls
// back to the plain-directory backend instead of risking host OOM.
const minFreeMemoryHeadroomMB = 256

// Handle identifies an acquired scratch volume and the backend that
// created it, so Release knows how to tear it down.
type Handle struct {
	Name    string
	Path    string
	Backend string // "ramdisk" (darwin), "tmpfs" (linux), "directory" (fallback)
}

// Volume is the capability interface to the OS layer: acquire a fast
// scratch volume, release it. The orchestrator treats every backend
// identically through this interface.
type Volume interface {
	Acquire(sizeMB int, name string) (Handle, error)
	Release(h Handle) error
}

const defaultVolumeName = "GatherspinScratch"

// OSVolume selects the RAM-disk backend on darwin, the tmpfs backend on
// linux (mounted at /mnt/tmp/<name>, created if missing), and
// falls back to a plain local directory on every other OS, or when the
// host's free RAM (per github.com/pbnjay/memory) looks too small to
// safely host a RAM-backed volume of the requested size.
type OSVolume struct{}

func (OSVolume) Acquire(sizeMB int, name string) (Handle, error) {
	if name == "" {
		name = defaultVolumeName
	}

	if !ramBackedSafe(sizeMB) {
		return acquirePlainDir(name)
	}

	switch runtime.GOOS {
	case "darwin":
		return acquireRAMDisk(sizeMB, name)
	case "linux":
		return acquireTmpfs(sizeMB, name)
	default:
		return acquirePlainDir(name)
	}
}

// ramBackedSafe reports whether the host has enough free memory to absorb
// a RAM-backed volume of sizeMB without starving everything else.
func ramBackedSafe(sizeMB int) bool {
	freeMB := memory.FreeMemory() / (1024 * 1024)
	return freeMB >= uint64(sizeMB)+minFreeMemoryHeadroomMB
}

func (OSVolume) Release(h Handle) error {
	switch h.Backend {
	case "ramdisk":
		if err := exec.Command("diskutil", "eject", h.Path).Run(); err != nil {
			return xerrors.Wrap(xerrors.KindCleanupFailed, "diskutil eject failed", err)
		}
		return nil
	case "tmpfs":
		if err := exec.Command("sudo", "umount", h.Path).Run(); err != nil {
			return xerrors.Wrap(xerrors.KindCleanupFailed, "umount failed", err)
		}
		return nil
	default: // "directory"
		if _, err := os.Stat(h.Path); os.IsNotExist(err) {
			return xerrors.New(xerrors.KindVolumeMissing, fmt.Sprintf("scratch directory already gone: %s", h.Path))
		}
		if err := os.RemoveAll(h.Path); err != nil {
			return xerrors.Wrap(xerrors.KindCleanupFailed, "remove scratch directory failed", err)
		}
		return nil
	}
}

func acquireRAMDisk(sizeMB int, name string) (Handle, error) {
	path := filepath.Join("/Volumes", name)
	if _, err := os.Stat(path); err == nil {
		return Handle{}, xerrors.New(xerrors.KindVolumeExists, fmt.Sprintf("volume already exists: %s", path))
	}

	sectors := sizeMB * 2048
	out, err := exec.Command("hdiutil", "attach", "-nomount", fmt.Sprintf("ram://%d", sectors)).Output()
	if err != nil {
		return Handle{}, xerrors.Wrap(xerrors.KindMountFailed, "hdiutil attach failed", err)
	}
	device := trimTrailingNewline(out)

	if err := exec.Command("diskutil", "partitionDisk", device, "1", "GPTFormat", "APFS", name, "100%").Run(); err != nil {
		return Handle{}, xerrors.Wrap(xerrors.KindMountFailed, "diskutil partitionDisk failed", err)
	}
	if st, err := os.Stat(path); err != nil || !st.IsDir() {
		return Handle{}, xerrors.New(xerrors.KindMountFailed, fmt.Sprintf("volume not properly mounted: %s", path))
	}
	return Handle{Name: device, Path: path, Backend: "ramdisk"}, nil
}

func acquireTmpfs(sizeMB int, name string) (Handle, error) {
	path := filepath.Join("/mnt/tmp", name)
	if st, err := os.Stat(path); err == nil {
		if !st.IsDir() {
			return Handle{}, xerrors.New(xerrors.KindVolumeExists, fmt.Sprintf("mount point is not a directory: %s", path))
		}
	} else if err := os.MkdirAll(path, 0o755); err != nil {
		return Handle{}, xerrors.Wrap(xerrors.KindMountFailed, "mkdir mount point failed", err)
	}

	opt := fmt.Sprintf("size=%dm", sizeMB)
	if err := exec.Command("sudo", "mount", "-t", "tmpfs", "-o", opt, "tmpfs", path).Run(); err != nil {
		return Handle{}, xerrors.Wrap(xerrors.KindMountFailed, "tmpfs mount failed", err)
	}
	return Handle{Name: "tmpfs", Path: path, Backend: "tmpfs"}, nil
}

func acquirePlainDir(name string) (Handle, error) {
	path := filepath.Join(os.TempDir(), name)
	if _, err := os.Stat(path); err == nil {
		return Handle{}, xerrors.New(xerrors.KindVolumeExists, fmt.Sprintf("volume already exists: %s", path))
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return Handle{}, xerrors.Wrap(xerrors.KindMountFailed, "mkdir scratch directory failed", err)
	}
	return Handle{Name: name, Path: path, Backend: "directory"}, nil
}

func trimTrailingNewline(b []byte) string {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r' || b[len(b)-1] == ' ') {
		b = b[:len(b)-1]
	}
	return string(b)
}

// CreateEnclosure makes a UUID-disambiguated enclosure directory inside
// root and installs the four static model fragments into it.
func CreateEnclosure(root string) (string, error) {
	path := filepath.Join(root, "enclosure-"+uuid.New().String())
	if err := os.Mkdir(path, 0o755); err != nil {
		return "", xerrors.Wrap(xerrors.KindInstallFailed, "create enclosure directory failed", err)
	}
	if err := InstallStatic(path); err != nil {
		return "", err
	}
	return path, nil
}

// InstallStatic (re-)writes the four static model fragments into path.
func InstallStatic(path string) error {
	for _, f := range promela.StaticFiles() {
		fp := filepath.Join(path, f.Name)
		if err := os.WriteFile(fp, []byte(f.Content), 0o644); err != nil {
			return xerrors.Wrap(xerrors.KindInstallFailed, fmt.Sprintf("install %s failed", fp), err)
		}
	}
	return nil
}
