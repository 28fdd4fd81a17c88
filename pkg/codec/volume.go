// ABOUTME: Volume range checks
// ABOUTME: Volume is passed to the engine unchanged as its 0-100 gain
package codec

const (
	MinVolume = 0
	MaxVolume = 100
)

// ValidateVolume rejects volumes outside [MinVolume, MaxVolume].
// Valid values reach the engine as-is; the engine scales its tone
// amplitude linearly by volume/100.
func ValidateVolume(volume int) error {
	if volume < MinVolume || volume > MaxVolume {
		return &VolumeRangeError{Volume: volume}
	}
	return nil
}
