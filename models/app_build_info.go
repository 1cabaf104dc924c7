// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo holds build metadata injected at link time.
type AppBuildInfo struct {
	BuildVersion string `json:"build_version"`
	BuildDate    string `json:"build_date"`
	BuildCommit  string `json:"build_commit"`
}
