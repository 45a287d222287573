// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"fmt"
	"net/url"
	"strings"
)

// Locator maps blob paths to public URLs and back.
type Locator struct {
	base   *url.URL
	bucket string
}

// NewLocator validates the public base URL and bucket name.
func NewLocator(publicBase, bucket string) (*Locator, error) {
	bucket = strings.Trim(strings.TrimSpace(bucket), "/")
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket name is empty")
	}

	base, err := url.Parse(strings.TrimSpace(publicBase))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("storage: invalid public base URL %q", publicBase)
	}

	return &Locator{base: base, bucket: bucket}, nil
}

// Bucket returns the bucket name.
func (l *Locator) Bucket() string {
	return l.bucket
}

// PublicURL returns <publicBase>/<bucket>/<path>.
func (l *Locator) PublicURL(path string) string {
	return l.base.JoinPath(l.bucket, path).String()
}

/*
PathFromURL recovers the blob path from a public URL: everything after the
first "/<bucket>/" segment of the URL path.

It reports false when the URL does not parse, the bucket segment is missing,
or nothing follows it.
*/
func (l *Locator) PathFromURL(raw string) (string, bool) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	marker := "/" + l.bucket + "/"
	_, path, found := strings.Cut(parsed.Path, marker)
	if !found || path == "" {
		return "", false
	}

	return path, true
}
