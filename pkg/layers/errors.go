/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package layers

import (
	"fmt"
)

// ErrFrameTooShort returned when a frame can not even carry a header,
// an object count and the integrity trailer
type ErrFrameTooShort struct {
	Length int
	Min    int
}

func (e ErrFrameTooShort) Error() string {
	return fmt.Sprintf("Track frame too short: %d bytes, must be at least %d", e.Length, e.Min)
}

// ErrHeaderMismatch returned when the frame header byte does not match
// the marker required by the selected profile. The header is checked
// only after the checksum is known to be valid.
type ErrHeaderMismatch struct {
	Found    uint8
	Expected uint8
}

func (e ErrHeaderMismatch) Error() string {
	return fmt.Sprintf("Wrong track frame header: 0x%02x, must be 0x%02x", e.Found, e.Expected)
}

// ErrUnknownProfile returned when a profile name from config or command
// line does not match any known protocol profile
type ErrUnknownProfile struct {
	Name string
}

func (e ErrUnknownProfile) Error() string {
	return fmt.Sprintf("Unknown protocol profile: %s. %s", e.Name, HelpProfiles)
}
