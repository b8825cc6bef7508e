// Package handles hands out the GL object names recorders reference.
//
// Recorders never create GL objects; they record integer names that the
// executor resolves. Table allocates those names on the recording side and
// keeps what an executor needs to create the objects later, such as the
// SPIR-V binary of a program compiled from WGSL with naga.
package handles
