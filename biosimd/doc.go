// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosimd provides lookup-table-based cleanup of raw ASCII base
// calls: capitalizing and folding anything outside ACGT to 'N'.
package biosimd
