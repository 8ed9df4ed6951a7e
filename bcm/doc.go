// The bcm package provides a hardware abstraction layer for the BCM2837
// system-on-chip of the Raspberry Pi 3.
//
// The subpackages implement low-level access to the memory mapped
// peripherals. Everything is polled, there is no interrupt handling. Use the
// drivers package for shared access to the peripherals from anywhere in the
// program.
package bcm

// BCM2837 ARM Peripherals
// https://github.com/raspberrypi/documentation/files/1888662/BCM2837-ARM-Peripherals.-.Revised.-.V2-1.pdf
