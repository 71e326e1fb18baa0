// SPDX-FileCopyrightText: 2023 Kent Gibson <warthog618@gmail.com>
//
// SPDX-License-Identifier: Apache-2.0 OR MIT

package board

// pinDefinition describes a header pin and the kernel resources behind it.
type pinDefinition struct {
	// Chip relative line offset, keyed by the ngpio of the chip, as the offset
	// varies between kernel versions.
	offsets map[int]int

	// Exported line names, keyed by ngpio.
	//
	// Omitted where the exported name is gpio<N>.
	names map[int]string

	// The sysfs name of the GPIO chip device.
	chip string

	board    int
	bcm      int
	cvm      string
	tegraSOC string

	// The sysfs name of the PWM chip device, empty for none.
	pwmChip string
	pwmID   int
}

var jetsonOrinPins = []pinDefinition{
	{map[int]int{164: 106}, map[int]string{164: "PQ.06"}, "2200000.gpio", 7, 4, "MCLK05", "GP66", "", 0},
	{map[int]int{164: 112}, map[int]string{164: "PR.04"}, "2200000.gpio", 11, 17, "UART1_RTS", "GP72_UART1_RTS_N", "", 0},
	{map[int]int{164: 50}, map[int]string{164: "PH.07"}, "2200000.gpio", 12, 18, "I2S2_CLK", "GP122", "", 0},
	{map[int]int{164: 108}, map[int]string{164: "PR.00"}, "2200000.gpio", 13, 27, "PWM01", "GP68", "", 0},
	{map[int]int{164: 85}, map[int]string{164: "PN.01"}, "2200000.gpio", 15, 22, "GPIO27", "GP88_PWM1", "3280000.pwm", 0},
	{map[int]int{32: 9}, map[int]string{32: "PBB.01"}, "c2f0000.gpio", 16, 23, "GPIO08", "GP26", "", 0},
	{map[int]int{164: 43}, map[int]string{164: "PH.00"}, "2200000.gpio", 18, 24, "GPIO35", "GP115", "32c0000.pwm", 0},
	{map[int]int{164: 135}, map[int]string{164: "PZ.05"}, "2200000.gpio", 19, 10, "SPI1_MOSI", "GP49_SPI1_MOSI", "", 0},
	{map[int]int{164: 134}, map[int]string{164: "PZ.04"}, "2200000.gpio", 21, 9, "SPI1_MISO", "GP48_SPI1_MISO", "", 0},
	{map[int]int{164: 96}, map[int]string{164: "PP.04"}, "2200000.gpio", 22, 25, "GPIO17", "GP56", "", 0},
	{map[int]int{164: 133}, map[int]string{164: "PZ.03"}, "2200000.gpio", 23, 11, "SPI1_CLK", "GP47_SPI1_CLK", "", 0},
	{map[int]int{164: 136}, map[int]string{164: "PZ.06"}, "2200000.gpio", 24, 8, "SPI1_CS0_N", "GP50_SPI1_CS0_N", "", 0},
	{map[int]int{164: 137}, map[int]string{164: "PZ.07"}, "2200000.gpio", 26, 7, "SPI1_CS1_N", "GP51_SPI1_CS1_N", "", 0},
	{map[int]int{32: 1}, map[int]string{32: "PAA.01"}, "c2f0000.gpio", 29, 5, "CAN0_DIN", "GP18_CAN0_DIN", "", 0},
	{map[int]int{32: 0}, map[int]string{32: "PAA.00"}, "c2f0000.gpio", 31, 6, "CAN0_DOUT", "GP17_CAN0_DOUT", "", 0},
	{map[int]int{32: 8}, map[int]string{32: "PBB.00"}, "c2f0000.gpio", 32, 12, "GPIO09", "GP25", "", 0},
	{map[int]int{32: 2}, map[int]string{32: "PAA.02"}, "c2f0000.gpio", 33, 13, "CAN1_DOUT", "GP19_CAN1_DOUT", "", 0},
	{map[int]int{164: 53}, map[int]string{164: "PI.02"}, "2200000.gpio", 35, 19, "I2S2_FS", "GP125", "", 0},
	{map[int]int{164: 113}, map[int]string{164: "PR.05"}, "2200000.gpio", 36, 16, "UART1_CTS", "GP73_UART1_CTS_N", "", 0},
	{map[int]int{32: 3}, map[int]string{32: "PAA.03"}, "c2f0000.gpio", 37, 26, "CAN1_DIN", "GP20_CAN1_DIN", "", 0},
	{map[int]int{164: 52}, map[int]string{164: "PI.01"}, "2200000.gpio", 38, 20, "I2S2_DIN", "GP124", "", 0},
	{map[int]int{164: 51}, map[int]string{164: "PI.00"}, "2200000.gpio", 40, 21, "I2S2_DOUT", "GP123", "", 0},
}

var jetsonNXPins = []pinDefinition{
	{map[int]int{224: 148, 169: 118}, map[int]string{169: "PS.04"}, "2200000.gpio", 7, 4, "GPIO09", "AUD_MCLK", "", 0},
	{map[int]int{224: 140, 169: 112}, map[int]string{169: "PR.04"}, "2200000.gpio", 11, 17, "UART1_RTS", "UART1_RTS", "", 0},
	{map[int]int{224: 157, 169: 127}, map[int]string{169: "PT.05"}, "2200000.gpio", 12, 18, "I2S0_SCLK", "DAP5_SCLK", "", 0},
	{map[int]int{224: 192, 169: 149}, map[int]string{169: "PY.00"}, "2200000.gpio", 13, 27, "SPI1_SCK", "SPI3_SCK", "", 0},
	{map[int]int{40: 20, 30: 16}, map[int]string{30: "PCC.04"}, "c2f0000.gpio", 15, 22, "GPIO12", "TOUCH_CLK", "c340000.pwm", 0},
	{map[int]int{224: 196, 169: 153}, map[int]string{169: "PY.04"}, "2200000.gpio", 16, 23, "SPI1_CS1", "SPI3_CS1_N", "", 0},
	{map[int]int{224: 195, 169: 152}, map[int]string{169: "PY.03"}, "2200000.gpio", 18, 24, "SPI1_CS0", "SPI3_CS0_N", "", 0},
	{map[int]int{224: 205, 169: 162}, map[int]string{169: "PZ.05"}, "2200000.gpio", 19, 10, "SPI0_MOSI", "SPI1_MOSI", "", 0},
	{map[int]int{224: 204, 169: 161}, map[int]string{169: "PZ.04"}, "2200000.gpio", 21, 9, "SPI0_MISO", "SPI1_MISO", "", 0},
	{map[int]int{224: 193, 169: 150}, map[int]string{169: "PY.01"}, "2200000.gpio", 22, 25, "SPI1_MISO", "SPI3_MISO", "", 0},
	{map[int]int{224: 203, 169: 160}, map[int]string{169: "PZ.03"}, "2200000.gpio", 23, 11, "SPI0_SCK", "SPI1_SCK", "", 0},
	{map[int]int{224: 206, 169: 163}, map[int]string{169: "PZ.06"}, "2200000.gpio", 24, 8, "SPI0_CS0", "SPI1_CS0_N", "", 0},
	{map[int]int{224: 207, 169: 164}, map[int]string{169: "PZ.07"}, "2200000.gpio", 26, 7, "SPI0_CS1", "SPI1_CS1_N", "", 0},
	{map[int]int{224: 133, 169: 105}, map[int]string{169: "PQ.05"}, "2200000.gpio", 29, 5, "GPIO01", "SOC_GPIO41", "", 0},
	{map[int]int{224: 134, 169: 106}, map[int]string{169: "PQ.06"}, "2200000.gpio", 31, 6, "GPIO11", "SOC_GPIO42", "", 0},
	{map[int]int{224: 136, 169: 108}, map[int]string{169: "PR.00"}, "2200000.gpio", 32, 12, "GPIO07", "SOC_GPIO44", "32f0000.pwm", 0},
	{map[int]int{224: 105, 169: 84}, map[int]string{169: "PN.01"}, "2200000.gpio", 33, 13, "GPIO13", "SOC_GPIO54", "3280000.pwm", 0},
	{map[int]int{224: 160, 169: 130}, map[int]string{169: "PU.00"}, "2200000.gpio", 35, 19, "I2S0_FS", "DAP5_FS", "", 0},
	{map[int]int{224: 141, 169: 113}, map[int]string{169: "PR.05"}, "2200000.gpio", 36, 16, "UART1_CTS", "UART1_CTS", "", 0},
	{map[int]int{224: 194, 169: 151}, map[int]string{169: "PY.02"}, "2200000.gpio", 37, 26, "SPI1_MOSI", "SPI3_MOSI", "", 0},
	{map[int]int{224: 159, 169: 129}, map[int]string{169: "PT.07"}, "2200000.gpio", 38, 20, "I2S0_DIN", "DAP5_DIN", "", 0},
	{map[int]int{224: 158, 169: 128}, map[int]string{169: "PT.06"}, "2200000.gpio", 40, 21, "I2S0_DOUT", "DAP5_DOUT", "", 0},
}

