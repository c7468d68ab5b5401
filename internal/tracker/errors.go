package tracker

import "errors"

var (
	// ErrTorrentNotTracked is returned when the tracker has no record of an info hash.
	ErrTorrentNotTracked = errors.New("torrent is not tracked")

	// ErrInvalidProxyAddress is returned when the proxy is not in "host:port" form.
	ErrInvalidProxyAddress = errors.New("invalid proxy address: must be host:port")

	// ErrNoTrackerURL is returned when a client is created without an API URL.
	ErrNoTrackerURL = errors.New("tracker api url is required")

	// ErrUnexpectedStatus is returned for any non-success HTTP status.
	ErrUnexpectedStatus = errors.New("unexpected tracker response status")
)
