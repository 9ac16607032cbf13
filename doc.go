// Package ssd1306 controls a monochrome OLED display via a SSD1306
// controller over I²C or 4-wire SPI.
//
// The driver is a thin, synchronous layer over the bus: a device
// descriptor is built once, Init brings the panel to a known operating
// state, and frame data is pushed into the controller's display RAM
// either from a caller-owned page-packed buffer or from an XBM bitmap.
// Every controller setting from the datasheet command table is exposed
// as its own operation.
//
// Display RAM is organized in pages: horizontal bands of 8 pixels, one
// byte per column, least significant bit on top. The image1bit
// subpackage provides an image.Image implementation with the same
// layout so the standard image/draw machinery can target the display.
//
// The 3-wire SPI variant of the controller uses 9-bit framing and is
// not supported; selecting it yields a device whose operations all
// fail with Err3WireUnsupported without touching the bus.
//
// # Datasheets
//
// https://www.solomon-systech.com/en/product/display-ic/oled-driver-controller/ssd1306/
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306
