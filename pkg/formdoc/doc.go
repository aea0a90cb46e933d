// Package formdoc defines the form document model: forms composed of ordered
// steps, steps composed of ordered fields, fields carrying options and
// validation rules. The package holds only data types and pure helpers;
// mutation lives in pkg/store and validation in pkg/validate.
package formdoc
