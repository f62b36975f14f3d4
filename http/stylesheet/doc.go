/*
Package stylesheet locates the XSLT stylesheet a route renders HTML with.

Stylesheets live under a theme directory:

	<base path>/templates/<theme>/<stylesheet>

A theme may declare a parent in its settings.json:

	{"inherits": "default"}

When a theme lacks a stylesheet, the parent theme's copy is used.
Only one level of inheritance is followed.
*/
package stylesheet
