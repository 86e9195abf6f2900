// genicam-snapshot - grab and encode still images from GenICam cameras
//  Copyright (C) 2020, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/genicam-snapshot/acquire"
)

// uploader posts snapshots to an HTTP endpoint as
// {"size": <bytes>, "value": "<base64 image>"}.
type uploader struct {
	mu     sync.Mutex
	url    string
	client *http.Client
}

type uploadBody struct {
	Size  int    `json:"size"`
	Value []byte `json:"value"`
}

func newUploader(conf UploadConfig) *uploader {
	return &uploader{
		url:    conf.URL,
		client: &http.Client{Timeout: conf.Timeout},
	}
}

func (u *uploader) URL() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.url
}

// SetURL changes the upload destination. An empty URL disables uploads.
func (u *uploader) SetURL(s string) error {
	s = strings.TrimSpace(s)
	if s != "" {
		if err := validateURL(s); err != nil {
			return errors.Wrap(err, "invalid image url")
		}
	}
	u.mu.Lock()
	u.url = s
	u.mu.Unlock()
	return nil
}

// Upload posts img. It does nothing if no URL is set.
func (u *uploader) Upload(img *acquire.Image) error {
	dest := u.URL()
	if dest == "" {
		return nil
	}
	body, err := json.Marshal(&uploadBody{Size: len(img.Data), Value: img.Data})
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, dest, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "image upload failed")
	}
	defer resp.Body.Close()
	io.Copy(ioutil.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image upload failed: %s", resp.Status)
	}
	return nil
}
