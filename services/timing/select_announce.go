//go:build announce

package timing

const defaultAnnounce = true
