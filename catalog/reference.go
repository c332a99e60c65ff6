/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package catalog

import (
	"strconv"

	"dirpx.dev/typeid/apis"
	"dirpx.dev/typeid/source"
	"dirpx.dev/typeid/suffix"
)

// Reference resolves the instantiation of host with args under role.
// Children are resolved first, bottom-up, and the parent is named from
// their final names with suffix.FromReference.
func (c *Catalog) Reference(pkg *source.Package, host source.Class, role apis.ReferenceType, args []apis.TypeArgument) *apis.Reference {
	ref := &apis.Reference{
		ClassName: host.Descriptor.QualifiedName,
		Role:      role,
	}
	for i, a := range args {
		param := strconv.Itoa(i)
		if i < len(host.TypeParams) {
			param = host.TypeParams[i]
		}
		ref.Parameters = append(ref.Parameters, apis.Binding{
			Parameter: param,
			Reference: c.argumentReference(pkg, a, role),
		})
	}
	sfx, _ := suffix.FromReference(ref, c.cfg)
	ref.Name = c.res.Resolve(apis.Request{
		Role:       role,
		Class:      host.Descriptor,
		Attributes: host.Attributes,
		Suffix:     sfx,
	}, c.cfg)
	return ref
}

// argumentReference resolves one type argument. Local classes keep their
// own kind and attributes; a local struct inherits the parent role so an
// input instantiation binds input types. Parameterized non-local arguments
// (lists, maps, foreign generics) are named as types; everything else is a
// scalar named verbatim.
func (c *Catalog) argumentReference(pkg *source.Package, a apis.TypeArgument, parent apis.ReferenceType) *apis.Reference {
	if cls, ok := pkg.Class(a.QualifiedName); ok {
		role := parent
		switch {
		case cls.Descriptor.Kind == apis.KindEnum:
			role = apis.RoleEnum
		case cls.Descriptor.Kind == apis.KindInterface:
			role = apis.RoleInterface
		case cls.Scalar:
			role = apis.RoleScalar
		}
		if a.Parameterized() {
			return c.Reference(pkg, cls, role, a.Arguments)
		}
		return &apis.Reference{
			Name: c.res.Resolve(apis.Request{
				Role:       role,
				Class:      cls.Descriptor,
				Attributes: cls.Attributes,
			}, c.cfg),
			ClassName: cls.Descriptor.QualifiedName,
			Role:      role,
		}
	}

	foreign := source.Class{
		Descriptor: apis.ClassDescriptor{QualifiedName: a.QualifiedName, LocalName: a.LocalName},
	}
	if a.Parameterized() {
		return c.Reference(pkg, foreign, apis.RoleType, a.Arguments)
	}
	return &apis.Reference{
		Name: c.res.Resolve(apis.Request{
			Role:  apis.RoleScalar,
			Class: foreign.Descriptor,
		}, c.cfg),
		ClassName: a.QualifiedName,
		Role:      apis.RoleScalar,
	}
}
