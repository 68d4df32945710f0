package davclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/davfs/errs"
	"github.com/xxxsen/davfs/model"
	"github.com/xxxsen/davfs/utils"
	"go.uber.org/zap"
)

// Guard against pathological servers reporting self referential
// collections, real trees never get this deep.
const defaultMaxWalkDepth = 64

type defaultClient struct {
	c     *config
	tr    *transport
	mount string
}

func newDefaultClient(c *config, u *url.URL) *defaultClient {
	return &defaultClient{
		c:     c,
		tr:    newTransport(c),
		mount: utils.Normalize(u.Path),
	}
}

func (d *defaultClient) Connect(ctx context.Context) error {
	_, err := d.tr.doDiscard(ctx, "OPTIONS", "/", nil, nil)
	return err
}

func (d *defaultClient) propfind(ctx context.Context, p string, depth string) ([]*model.ResponseEntry, error) {
	hdr := map[string]string{
		"Depth":        depth,
		"Content-Type": model.ContentTypeXML,
	}
	raw, err := d.tr.doRead(ctx, "PROPFIND", p, hdr, bytes.NewReader(model.PropfindBody(nil)))
	if err != nil {
		return nil, err
	}
	entries, err := model.ParseMultistatus(raw)
	if err != nil {
		return nil, errs.Protocol("parse multistatus failed", 0, err)
	}
	return entries, nil
}

// entryFromResponse maps one multistatus response to an Entry. Hrefs arrive
// either absolute or server-rooted and may carry the mount prefix, the
// resulting path is always relative to the mount.
func (d *defaultClient) entryFromResponse(re *model.ResponseEntry) *Entry {
	p := re.Href
	if u, err := url.Parse(p); err == nil && u.Scheme != "" {
		p = u.Path
	}
	p = utils.Normalize(p)
	if d.mount != "/" {
		if p == d.mount {
			p = "/"
		} else if strings.HasPrefix(p, d.mount+"/") {
			p = utils.Normalize(p[len(d.mount):])
		}
	}
	size := re.Props.Size
	if re.Props.IsDir {
		size = 0
	}
	return &Entry{
		Name:        utils.Basename(p),
		Path:        p,
		Size:        size,
		IsDir:       re.Props.IsDir,
		Mtime:       re.Props.LastModified,
		Ctime:       re.Props.CreatedAt,
		ContentType: re.Props.ContentType,
		ETag:        re.Props.ETag,
	}
}

func (d *defaultClient) Stat(ctx context.Context, p string) (*Entry, error) {
	p = utils.Normalize(p)
	entries, err := d.propfind(ctx, p, model.Depth0)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errs.NotFound(p)
	}
	ent := d.entryFromResponse(entries[0])
	ent.Path = p
	ent.Name = utils.Basename(p)
	return ent, nil
}

func (d *defaultClient) Exists(ctx context.Context, p string) (bool, error) {
	if _, err := d.Stat(ctx, p); err != nil {
		if errs.IsKind(err, errs.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (d *defaultClient) ReadFile(ctx context.Context, p string) ([]byte, error) {
	p = utils.Normalize(p)
	return d.tr.doRead(ctx, http.MethodGet, p, nil, nil)
}

// ReadStream is not bounded by the configured timeout, the body can be
// consumed at the caller's pace and cancelled via ctx.
func (d *defaultClient) ReadStream(ctx context.Context, p string) (io.ReadCloser, error) {
	p = utils.Normalize(p)
	rsp, err := d.tr.doStream(ctx, http.MethodGet, p, nil)
	if err != nil {
		return nil, err
	}
	return rsp.body, nil
}

func (d *defaultClient) WriteFile(ctx context.Context, p string, data []byte, opts ...WriteOption) error {
	o := &writeOptions{overwrite: true}
	for _, opt := range opts {
		opt(o)
	}
	p = utils.Normalize(p)
	if !o.overwrite {
		// probe and put are two requests, a concurrent writer can win the race
		exist, err := d.Exists(ctx, p)
		if err != nil {
			return err
		}
		if exist {
			return errs.AlreadyExists(p)
		}
	}
	ct := o.contentType
	if ct == "" {
		ct = utils.ContentTypeFor(p)
	}
	hdr := map[string]string{"Content-Type": ct}
	_, err := d.tr.doDiscard(ctx, http.MethodPut, p, hdr, bytes.NewReader(data))
	return err
}

func (d *defaultClient) WriteStream(ctx context.Context, p string) (io.WriteCloser, error) {
	return newWriteStream(ctx, utils.Normalize(p), d.WriteFile), nil
}

// AppendFile reads the current content and writes back the concatenation. A
// writer racing between the read and the put gets overwritten.
func (d *defaultClient) AppendFile(ctx context.Context, p string, data []byte) error {
	p = utils.Normalize(p)
	exist, err := d.Exists(ctx, p)
	if err != nil {
		return err
	}
	if !exist {
		return d.WriteFile(ctx, p, data)
	}
	cur, err := d.ReadFile(ctx, p)
	if err != nil {
		return err
	}
	buf := make([]byte, 0, len(cur)+len(data))
	buf = append(buf, cur...)
	buf = append(buf, data...)
	return d.WriteFile(ctx, p, buf)
}

func (d *defaultClient) DeleteFile(ctx context.Context, p string) error {
	p = utils.Normalize(p)
	ent, err := d.Stat(ctx, p)
	if err != nil {
		return err
	}
	if ent.IsDir {
		return errs.InvalidArgument("cant unlink a directory, use Remove/RemoveAll")
	}
	_, err = d.tr.doDiscard(ctx, http.MethodDelete, p, nil, nil)
	return err
}

func (d *defaultClient) Mkdir(ctx context.Context, dir string) error {
	dir = utils.Normalize(dir)
	ent, err := d.Stat(ctx, dir)
	if err == nil {
		if ent.IsDir {
			return nil
		}
		return errs.AlreadyExists(dir)
	}
	if !errs.IsKind(err, errs.KindNotFound) {
		return err
	}
	_, err = d.tr.doDiscard(ctx, "MKCOL", dir, nil, nil)
	return err
}

// MkdirAll creates missing ancestors before the leaf.
func (d *defaultClient) MkdirAll(ctx context.Context, dir string) error {
	dir = utils.Normalize(dir)
	if strings.Count(dir, "/") > defaultMaxWalkDepth {
		return errs.InvalidArgument("path depth out of limit")
	}
	return d.mkdirAll(ctx, dir)
}

func (d *defaultClient) mkdirAll(ctx context.Context, dir string) error {
	if dir == "/" {
		return nil
	}
	ent, err := d.Stat(ctx, dir)
	if err == nil {
		if ent.IsDir {
			return nil
		}
		return errs.AlreadyExists(dir)
	}
	if !errs.IsKind(err, errs.KindNotFound) {
		return err
	}
	if parent := utils.ParentOf(dir); parent != "/" {
		if err := d.mkdirAll(ctx, parent); err != nil {
			return err
		}
	}
	logutil.GetLogger(ctx).Debug("mkcol", zap.String("dir", dir))
	_, err = d.tr.doDiscard(ctx, "MKCOL", dir, nil, nil)
	return err
}

// Remove deletes a single entry, refusing non-empty directories.
func (d *defaultClient) Remove(ctx context.Context, p string) error {
	p = utils.Normalize(p)
	ent, err := d.Stat(ctx, p)
	if err != nil {
		return err
	}
	if ent.IsDir {
		children, err := d.ReadDir(ctx, p, WithHidden())
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return errs.InvalidArgument("directory not empty")
		}
	}
	_, err = d.tr.doDiscard(ctx, http.MethodDelete, p, nil, nil)
	return err
}

// RemoveAll deletes the subtree depth first, children before parents, one
// request at a time in server listing order. A missing target is a no-op.
func (d *defaultClient) RemoveAll(ctx context.Context, p string) error {
	return d.removeAll(ctx, utils.Normalize(p), 0)
}

func (d *defaultClient) removeAll(ctx context.Context, p string, depth int) error {
	if depth > defaultMaxWalkDepth {
		return errs.InvalidArgument("walk depth out of limit")
	}
	ent, err := d.Stat(ctx, p)
	if errs.IsKind(err, errs.KindNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if ent.IsDir {
		children, err := d.ReadDir(ctx, p, WithHidden())
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := d.removeAll(ctx, child.Path, depth+1); err != nil {
				return err
			}
		}
	}
	logutil.GetLogger(ctx).Debug("delete entry", zap.String("path", p), zap.Bool("is_dir", ent.IsDir))
	_, err = d.tr.doDiscard(ctx, http.MethodDelete, p, nil, nil)
	if errs.IsKind(err, errs.KindNotFound) {
		return nil
	}
	return err
}

// ReadDir lists dir in server-provided order. The directory's own entry is
// dropped, dot names are dropped unless WithHidden.
func (d *defaultClient) ReadDir(ctx context.Context, dir string, opts ...ReadDirOption) ([]*Entry, error) {
	o := &readDirOptions{}
	for _, opt := range opts {
		opt(o)
	}
	dir = utils.Normalize(dir)
	depth := model.Depth1
	if o.recursive {
		depth = model.DepthInfinity
	}
	entries, err := d.propfind(ctx, dir, depth)
	if err != nil {
		return nil, err
	}
	rs := make([]*Entry, 0, len(entries))
	for _, re := range entries {
		ent := d.entryFromResponse(re)
		if ent.Path == dir || ent.Name == "" {
			continue
		}
		if !o.includeHidden && strings.HasPrefix(ent.Name, ".") {
			continue
		}
		rs = append(rs, ent)
	}
	return rs, nil
}

func (d *defaultClient) Copy(ctx context.Context, src, dst string, overwrite bool, opts ...CopyOption) error {
	o := &copyOptions{depth: model.DepthInfinity}
	for _, opt := range opts {
		opt(o)
	}
	src = utils.Normalize(src)
	dst = utils.Normalize(dst)
	if _, err := d.Stat(ctx, src); err != nil {
		return err
	}
	if !overwrite {
		exist, err := d.Exists(ctx, dst)
		if err != nil {
			return err
		}
		if exist {
			return errs.AlreadyExists(dst)
		}
	}
	hdr := model.CopyMoveHeaders(utils.JoinURL(d.c.endpoint, dst), overwrite, o.depth)
	_, err := d.tr.doDiscard(ctx, "COPY", src, hdr, nil)
	return err
}

func (d *defaultClient) Move(ctx context.Context, src, dst string, overwrite bool) error {
	src = utils.Normalize(src)
	dst = utils.Normalize(dst)
	if _, err := d.Stat(ctx, src); err != nil {
		return err
	}
	if !overwrite {
		exist, err := d.Exists(ctx, dst)
		if err != nil {
			return err
		}
		if exist {
			return errs.AlreadyExists(dst)
		}
	}
	hdr := model.CopyMoveHeaders(utils.JoinURL(d.c.endpoint, dst), overwrite, "")
	_, err := d.tr.doDiscard(ctx, "MOVE", src, hdr, nil)
	return err
}

func (d *defaultClient) Rename(ctx context.Context, p, newName string) error {
	if newName == "" || strings.Contains(newName, "/") {
		return errs.InvalidArgument("invalid new name")
	}
	p = utils.Normalize(p)
	dst := utils.Normalize(utils.ParentOf(p) + "/" + newName)
	return d.Move(ctx, p, dst, false)
}

func (d *defaultClient) SetProps(ctx context.Context, p string, props map[string]string) error {
	if len(props) == 0 {
		return errs.InvalidArgument("no props to set")
	}
	p = utils.Normalize(p)
	hdr := map[string]string{"Content-Type": model.ContentTypeXML}
	_, err := d.tr.doDiscard(ctx, "PROPPATCH", p, hdr, bytes.NewReader(model.ProppatchBody(props)))
	return err
}
