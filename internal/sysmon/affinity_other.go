//go:build !linux

package sysmon

func affinityCPUs() int { return 0 }
