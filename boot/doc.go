// Package boot implements the bootloader's main loop. A Loader signals
// readiness, receives an image over a serial transport into a fixed memory
// window and branches to its first byte. Failed transfers are signaled and
// retried forever.
//
// The status LED is the only feedback while waiting, since the console shares
// the serial line with the transfer.
package boot
