package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"tableflip.dev/dayplan/pkg/logging"
	"tableflip.dev/dayplan/pkg/task"
)

// MaxAttachmentBytes caps a single payload.
const MaxAttachmentBytes = 32 << 20

// FileSource supplies one attachment.
type FileSource struct {
	Name      string
	MediaType string
	Open      func() (io.ReadCloser, error)
}

// FileFromPath reads an attachment from the local filesystem. The media type
// comes from the extension, or from sniffing the content when the extension
// is unknown.
func FileFromPath(path string) FileSource {
	return FileSource{
		Name:      filepath.Base(path),
		MediaType: mime.TypeByExtension(filepath.Ext(path)),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

// FileFromBytes wraps an in-memory payload.
func FileFromBytes(name, mediaType string, data []byte) FileSource {
	return FileSource{
		Name:      name,
		MediaType: mediaType,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// AttachFile reads src in the background, spools it and appends it to the
// task. Completions are independent and unordered. If the task is gone by the
// time the read finishes the payload is dropped and nil is reported. Read
// failures are logged and sent on the returned channel, which is closed after
// one value.
func (p *Planner) AttachFile(ctx context.Context, id string, src FileSource) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		err := p.attach(ctx, id, src)
		if err != nil {
			logging.Error(p.Log, "attachment_failed", err, map[string]any{"task_id": id, "name": src.Name})
		}
		errc <- err
	}()
	return errc
}

func (p *Planner) attach(ctx context.Context, id string, src FileSource) error {
	if p.Spool == nil {
		return ErrNoSpool
	}
	if src.Open == nil {
		return fmt.Errorf("app: attachment %q has no content", src.Name)
	}
	rc, err := src.Open()
	if err != nil {
		return fmt.Errorf("app: open attachment %q: %w", src.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxAttachmentBytes+1))
	if err != nil {
		return fmt.Errorf("app: read attachment %q: %w", src.Name, err)
	}
	if len(data) > MaxAttachmentBytes {
		return fmt.Errorf("app: attachment %q exceeds %d bytes", src.Name, MaxAttachmentBytes)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	mediaType := src.MediaType
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}
	ref, err := p.Spool.Put(data)
	if err != nil {
		return err
	}
	_, ok := p.Store.AddAttachment(id, task.Attachment{
		Name:      src.Name,
		MediaType: mediaType,
		Ref:       ref,
		Size:      int64(len(data)),
	})
	if !ok {
		// The task was deleted while we were reading.
		_ = p.Spool.Delete(ref)
		logging.Warn(p.Log, "attachment_orphaned", map[string]any{"task_id": id, "name": src.Name})
		return nil
	}
	logging.Info(p.Log, "attachment_added", map[string]any{"task_id": id, "name": src.Name, "size": len(data)})
	return nil
}

// RemoveAttachment detaches attID from the task and releases its payload.
func (p *Planner) RemoveAttachment(ctx context.Context, id, attID string) (task.Task, error) {
	if err := ctx.Err(); err != nil {
		return task.Task{}, err
	}
	if _, ok := p.Store.Get(id); !ok {
		return task.Task{}, ErrNotFound
	}
	t, removed, ok := p.Store.RemoveAttachment(id, attID)
	if !ok {
		return t, fmt.Errorf("app: attachment %q not found", attID)
	}
	if p.Spool != nil {
		if err := p.Spool.Release(p.Store, removed.Ref); err != nil {
			logging.Error(p.Log, "attachment_release_failed", err, map[string]any{"task_id": id})
		}
	}
	return t, nil
}

// AttachmentContent returns the attachment metadata and payload.
func (p *Planner) AttachmentContent(id, attID string) (task.Attachment, []byte, error) {
	t, ok := p.Store.Get(id)
	if !ok {
		return task.Attachment{}, nil, ErrNotFound
	}
	if p.Spool == nil {
		return task.Attachment{}, nil, ErrNoSpool
	}
	for _, a := range t.Attachments {
		if a.ID != attID {
			continue
		}
		data, err := p.Spool.Get(a.Ref)
		if err != nil {
			return a, nil, err
		}
		return a, data, nil
	}
	return task.Attachment{}, nil, fmt.Errorf("app: attachment %q not found", attID)
}
