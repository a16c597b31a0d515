package main

import (
	"log"
	"time"

	"github.com/veandco/go-sdl2/sdl"
)

const (
	/// Audio sample rate and the pitch of the beep.
	///
	SampleRate = 22050
	ToneHz     = 440

	/// BeepLength is how long each sound timer write beeps for.
	///
	BeepLength = time.Second / 8
)

var (
	/// Audio device the beep is queued on. Zero if there is no audio.
	///
	AudioDevice sdl.AudioDeviceID

	/// Tone is one beep worth of unsigned 8-bit samples.
	///
	Tone []byte
)

/// Initialize an audio device for the CHIP-8 virtual machine.
///
func InitAudio() {
	spec := &sdl.AudioSpec{
		Freq:     SampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  512,
	}

	dev, err := sdl.OpenAudioDevice("", false, spec, nil, 0)
	if err != nil {
		log.Printf("no audio: %v", err)
		return
	}

	AudioDevice = dev
	Tone = SquareWave(SampleRate, ToneHz, BeepLength)

	// start playing whatever gets queued
	sdl.PauseAudioDevice(AudioDevice, false)

	// the VM beeps through the keypad
	Keys.Beep = Beep
}

/// Beep queues a single tone on the audio device.
///
func Beep() {
	if AudioDevice == 0 {
		return
	}

	// don't let beeps pile up
	if sdl.GetQueuedAudioSize(AudioDevice) > uint32(len(Tone)) {
		return
	}

	if err := sdl.QueueAudio(AudioDevice, Tone); err != nil {
		log.Printf("beep: %v", err)
	}
}

/// SquareWave returns d worth of an unsigned 8-bit square wave.
///
func SquareWave(rate, hz int, d time.Duration) []byte {
	n := int(int64(rate) * int64(d) / int64(time.Second))
	period := rate / hz

	samples := make([]byte, n)
	for i := range samples {
		if i%period < period/2 {
			samples[i] = 0xA0
		} else {
			samples[i] = 0x60
		}
	}

	return samples
}
