// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background jobs that keep the local cache tidy
// while the application is alive.
package workers

import "context"

// Worker is a background job. Start launches it and returns immediately;
// the job keeps running until ctx is cancelled or Stop is called.
//
// Stop must block until the job has exited and must be safe to call on a job
// that was never started.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}
