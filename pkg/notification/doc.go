// Package notification decodes host MIDI notification records.
//
// The host delivers each notification as a buffer that starts with an
// 8-byte header, followed by message-specific fields at fixed offsets:
//
//	offset  size  field
//	0       4     message id
//	4       4     message size (whole record, header included)
//	8       ...   payload
//
// All integers are in host byte order (little endian). [Decode] reads the
// header, checks that the buffer covers the fixed layout of the message,
// and extracts each field explicitly. It never reads past the slice.
//
// # Results
//
// A successful decode yields one of the [Notification] implementations:
// [SetupChanged], [ObjectAdded], [ObjectRemoved], [PropertyChanged],
// [ThruConnectionsChanged], [SerialPortOwnerChanged] or [IOError]. All of
// them are owned values; nothing refers back into the buffer.
//
// # Error Codes
//
// Failures are reported as *[Error] carrying an integer code:
//   - Unknown message id: the code is the message id itself.
//   - Unknown object type inside a known message: the code is the
//     enclosing message id, not the bad object type.
//
// Use [ErrorCode] to extract the code from any returned error.
package notification
